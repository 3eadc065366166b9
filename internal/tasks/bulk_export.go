package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
	manifestName   = "export_manifest.json"
)

// Lookup resolves a watchlist title to its catalog entry.
type Lookup func(title string) (*models.Movie, bool)

// BulkExportOpts contains configuration for bulk watchlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // csv, md or txt
	OutputDir  string           // Base output directory (default: watchlist_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
	RateLimit  float64          // Files per second; zero or less is unlimited
}

// ExportResult is the outcome for one user.
type ExportResult struct {
	Username string `json:"username"`
	File     string `json:"file,omitempty"`
	Titles   int    `json:"titles"`
	Missing  int    `json:"missing"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// BulkExportResult summarizes a [BulkExport] run.
type BulkExportResult struct {
	OutputDirectory string         `json:"output_directory"`
	Format          string         `json:"format"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Total           int            `json:"total"`
	Succeeded       int            `json:"succeeded"`
	Failed          int            `json:"failed"`
	Results         []ExportResult `json:"results"`
	ManifestPath    string         `json:"-"`
}

type exportJob struct {
	export *formatter.WatchlistExport
	path   string
}

// BulkExport writes one file per user in lists and a manifest summarizing the run.
//
// Titles are resolved through lookup on the calling goroutine; workers only render and write.
func BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	lists map[string][]string,
	lookup Lookup,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if lookup == nil {
		return nil, fmt.Errorf("%w: catalog lookup", shared.ErrMissingArgument)
	}
	format, err := formatter.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("watchlist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	opts.NumWorkers = min(opts.NumWorkers, maxWorkers)

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	usernames := make([]string, 0, len(lists))
	for username := range lists {
		usernames = append(usernames, username)
	}
	slices.Sort(usernames)
	total := len(usernames)

	result := &BulkExportResult{
		OutputDirectory: opts.OutputDir,
		Format:          string(opts.Format),
		GeneratedAt:     time.Now().UTC(),
		Total:           total,
		Results:         make([]ExportResult, 0, total),
	}

	limiter := rate.NewLimiter(limit, 1)
	jobs := make(chan exportJob, total)
	results := make(chan ExportResult, total)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(ctx, &wg, limiter, jobs, results, opts.Format)
	}

	sendProgress(prog, queueUpdate(total))
	for _, username := range usernames {
		if ctx.Err() != nil {
			break
		}
		export := formatter.NewWatchlistExport(username, lists[username], lookup)
		jobs <- exportJob{
			export: export,
			path:   formatter.DefaultFilename(opts.OutputDir, username, opts.Format),
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.Succeeded++
			sendProgress(prog, exportCompletedUpdate(completed, total, res.Username, res.Titles))
		} else {
			result.Failed++
			sendProgress(prog, exportFailedUpdate(completed, total, res.Username, res.Error))
		}
	}
	slices.SortFunc(result.Results, func(a, b ExportResult) int {
		return strings.Compare(a.Username, b.Username)
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("bulk export interrupted: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker renders and writes jobs until the channel closes or ctx is done.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	results chan<- ExportResult,
	format formatter.Format,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		results <- exportSingle(job, format)
	}
}

func exportSingle(job exportJob, format formatter.Format) ExportResult {
	res := ExportResult{
		Username: job.export.Username,
		Titles:   len(job.export.Entries),
	}
	for _, entry := range job.export.Entries {
		if entry.Movie == nil {
			res.Missing++
		}
	}

	data, err := formatter.ExportWatchlist(job.export, format)
	if err != nil {
		res.Error = fmt.Sprintf("render failed: %v", err)
		return res
	}
	if err := formatter.WriteExport(job.path, data); err != nil {
		res.Error = fmt.Sprintf("write failed: %v", err)
		return res
	}

	res.File = job.path
	res.Success = true
	return res
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return shared.WriteFile(path, append(data, '\n'))
}

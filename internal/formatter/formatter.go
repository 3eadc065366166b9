// package formatter exports catalog and watchlist data to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// ParseFormat maps a user-supplied format name to a [Format].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, name)
	}
}

// Entry is one watchlist title, with its catalog record when the catalog still has it.
type Entry struct {
	Title string
	Movie *models.Movie
}

// WatchlistExport is a user's watchlist resolved against the catalog.
type WatchlistExport struct {
	Username string
	Entries  []Entry
}

// NewWatchlistExport resolves titles through lookup. Titles the catalog no longer has are kept without details.
func NewWatchlistExport(username string, titles []string, lookup func(string) (*models.Movie, bool)) *WatchlistExport {
	export := &WatchlistExport{Username: username, Entries: make([]Entry, 0, len(titles))}
	for _, title := range titles {
		entry := Entry{Title: title}
		if lookup != nil {
			if movie, ok := lookup(title); ok {
				entry.Movie = movie
			}
		}
		export.Entries = append(export.Entries, entry)
	}
	return export
}

// FormatRuntime renders minutes as "2h 28m". Zero renders as "unknown".
func FormatRuntime(minutes int) string {
	switch {
	case minutes <= 0:
		return "unknown"
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

// CatalogToCSV converts movies to CSV with columns: Title, Year, Runtime, Director
func CatalogToCSV(movies []models.Movie) ([]byte, error) {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{m.Title(), strconv.Itoa(m.ReleaseYear()), strconv.Itoa(m.RunningTime()), m.Director()})
	}
	return writeCSV([]string{"Title", "Year", "Runtime", "Director"}, rows)
}

// WatchlistToCSV converts a watchlist to CSV with columns: Position, Title, Year, Runtime, Director.
// Titles missing from the catalog leave the detail columns empty.
func WatchlistToCSV(export *WatchlistExport) ([]byte, error) {
	rows := make([][]string, 0, len(export.Entries))
	for i, e := range export.Entries {
		row := []string{strconv.Itoa(i + 1), e.Title, "", "", ""}
		if e.Movie != nil {
			row[2] = strconv.Itoa(e.Movie.ReleaseYear())
			row[3] = strconv.Itoa(e.Movie.RunningTime())
			row[4] = e.Movie.Director()
		}
		rows = append(rows, row)
	}
	return writeCSV([]string{"Position", "Title", "Year", "Runtime", "Director"}, rows)
}

// WatchlistToMarkdown converts a watchlist to a Markdown document with a numbered list
func WatchlistToMarkdown(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s's watchlist\n\n", export.Username)
	fmt.Fprintf(&buf, "**Movies**: %d\n", len(export.Entries))
	fmt.Fprintf(&buf, "**Total running time**: %s\n\n", FormatRuntime(totalRuntime(export)))

	buf.WriteString("## Movies\n\n")
	for i, e := range export.Entries {
		if e.Movie == nil {
			fmt.Fprintf(&buf, "%d. %s _(not in catalog)_\n", i+1, e.Title)
			continue
		}
		fmt.Fprintf(&buf, "%d. **%s** (%d) - %s [%s]\n", i+1, e.Title, e.Movie.ReleaseYear(), e.Movie.Director(), FormatRuntime(e.Movie.RunningTime()))
	}

	return buf.Bytes(), nil
}

// WatchlistToText converts a watchlist to plain text
func WatchlistToText(export *WatchlistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Watchlist: %s\n", export.Username)
	fmt.Fprintf(&buf, "Movies: %d\n\n", len(export.Entries))

	for i, e := range export.Entries {
		if e.Movie == nil {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, e.Title)
			continue
		}
		fmt.Fprintf(&buf, "%d. %s\n", i+1, e.Movie.String())
	}

	return buf.Bytes(), nil
}

// ExportWatchlist renders export in the given format.
func ExportWatchlist(export *WatchlistExport, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return WatchlistToCSV(export)
	case FormatMarkdown:
		return WatchlistToMarkdown(export)
	case FormatText:
		return WatchlistToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// DefaultFilename returns "{username}_watchlist.{format}" in dir.
//
// Path separators in username are replaced with "_" so the result always names a file directly inside dir.
func DefaultFilename(dir, username string, format Format) string {
	return filepath.Join(dir, fmt.Sprintf("%s_watchlist.%s", fileSafe(username), format))
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator || r == 0 {
			return '_'
		}
		return r
	}, name)
}

// WriteExport writes data to path, creating parent directories as needed.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: export path", shared.ErrMissingArgument)
	}
	return shared.WriteFile(path, data)
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func totalRuntime(export *WatchlistExport) int {
	total := 0
	for _, e := range export.Entries {
		if e.Movie != nil {
			total += e.Movie.RunningTime()
		}
	}
	return total
}

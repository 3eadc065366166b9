package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WatchlistAdd adds a catalog movie to the user's watchlist.
func (r *Runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	username, err := r.authenticate(cmd)
	if err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}
	if _, ok := c.Get(title); !ok {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, title)
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}
	if err := store.AddMovie(username, title); err != nil {
		return err
	}

	return r.writePlain("✓ Added %s to %s's watchlist\n", title, username)
}

// WatchlistRemove removes a title from the user's watchlist.
func (r *Runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	username, err := r.authenticate(cmd)
	if err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}

	removed, err := store.RemoveMovie(username, title)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", shared.ErrNotInWatchlist, title)
	}

	return r.writePlain("✓ Removed %s from %s's watchlist\n", title, username)
}

// WatchlistList prints the user's watchlist with catalog details.
func (r *Runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	export, err := r.watchlistExport(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.WatchlistToText(export)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// WatchlistExport writes the user's watchlist to a CSV, Markdown or text file.
func (r *Runner) WatchlistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	export, err := r.watchlistExport(cmd)
	if err != nil {
		return err
	}

	data, err := formatter.ExportWatchlist(export, format)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		path = formatter.DefaultFilename(".", export.Username, format)
	}

	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}

	r.logger.Info("watchlist exported", "username", export.Username, "path", path, "format", format)
	return r.writePlain("✓ Exported %d movies to %s\n", len(export.Entries), path)
}

// WatchlistExportAll writes every user's watchlist to its own file plus a JSON manifest.
func (r *Runner) WatchlistExportAll(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	result, err := tasks.BulkExport(ctx, prog, store.Snapshot(), c.Get, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if err := r.writePlain("✓ Exported %d of %d watchlists to %s\n", result.Succeeded, result.Total, result.OutputDirectory); err != nil {
		return err
	}
	for _, res := range result.Results {
		if !res.Success {
			if err := r.writePlain("  ✗ %s: %s\n", res.Username, res.Error); err != nil {
				return err
			}
		}
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}

func (r *Runner) watchlistExport(cmd *cli.Command) (*formatter.WatchlistExport, error) {
	username, err := r.authenticate(cmd)
	if err != nil {
		return nil, err
	}

	c, err := r.loadCatalog()
	if err != nil {
		return nil, err
	}

	store, err := r.watchlistStore()
	if err != nil {
		return nil, err
	}

	return formatter.NewWatchlistExport(username, store.ListForUser(username), c.Get), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/mvx/internal/catalog"
	"github.com/desertthunder/mvx/internal/formatter"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/urfave/cli/v3"
)

// movieJSON is the --json representation of a movie.
type movieJSON struct {
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseYear int    `json:"release_year"`
	RunningTime int    `json:"running_time"`
}

func toMovieJSON(movies []models.Movie) []movieJSON {
	out := make([]movieJSON, len(movies))
	for i, m := range movies {
		out[i] = movieJSON{Title: m.Title(), Director: m.Director(), ReleaseYear: m.ReleaseYear(), RunningTime: m.RunningTime()}
	}
	return out
}

// CatalogList prints every movie in the catalog.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}
	return r.printMovies("Catalog", c.ListAll(), cmd.Bool("json"))
}

// CatalogSearch prints movies whose title or director contains the query.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}
	return r.printMovies(fmt.Sprintf("Results for %q", query), c.Search(query), cmd.Bool("json"))
}

// CatalogAdd appends a new movie to the catalog file. Titles already in the catalog are rejected.
//
// A missing catalog file is treated as empty and created with a header row.
func (r *Runner) CatalogAdd(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.String("title"))
	movie, err := models.NewMovie(title, cmd.String("director"), cmd.Int("year"), cmd.Int("runtime"))
	if err != nil {
		return err
	}

	loader := r.catalogLoader()
	c, err := loader.LoadFromFile()
	if errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("catalog file not found, creating it", "path", loader.Path())
		c, err = catalog.New(), nil
	}
	if err != nil {
		return err
	}

	if !c.Add(movie) {
		return fmt.Errorf("%w: %s", shared.ErrMovieExists, movie.Title())
	}

	if err := loader.AppendMovie(movie); err != nil {
		return err
	}

	r.logger.Info("movie added", "title", movie.Title())
	return r.writePlain("✓ Added %s\n", movie.String())
}

// CatalogRemove deletes every catalog row with the given title, ignoring case.
func (r *Runner) CatalogRemove(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	deleted, err := r.catalogLoader().DeleteByTitle(title)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, title)
	}

	r.logger.Info("movie removed", "title", title)
	return r.writePlain("✓ Removed %s\n", title)
}

// CatalogSync rebuilds the SQLite mirror from the catalog file.
func (r *Runner) CatalogSync(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	db, err := shared.OpenMirror(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repositories.NewMovieRepository(db).Sync(r.config.Files.Catalog, c.ListAll())
	if err != nil {
		return fmt.Errorf("failed to sync mirror: %w", err)
	}

	runs, err := repositories.NewSyncRunRepository(db).Count()
	if err != nil {
		return err
	}

	r.logger.Info("mirror synced", "database", r.config.Database.Path, "movies", n, "runs", runs)
	return r.writePlain("✓ Synced %d movies to %s (sync #%d)\n", n, r.config.Database.Path, runs)
}

// CatalogQuery filters the SQLite mirror by director, title and year, or looks up one exact title with --exact.
func (r *Runner) CatalogQuery(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenMirror(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	runs := repositories.NewSyncRunRepository(db)
	run, err := runs.Latest()
	if err != nil {
		return err
	}
	if run == nil {
		r.logger.Warn("mirror has never been synced, run 'mvx catalog sync' first")
	}

	movieRepo := repositories.NewMovieRepository(db)
	var mirrored []*models.MirroredMovie
	if exact := cmd.String("exact"); exact != "" {
		m, err := movieRepo.GetByTitle(exact)
		if err != nil {
			return fmt.Errorf("%w: %s", err, exact)
		}
		mirrored = append(mirrored, m)
	} else {
		mirrored, err = movieRepo.List(map[string]any{
			"director": cmd.String("director"),
			"title":    cmd.String("title"),
			"year":     cmd.Int("year"),
		})
		if err != nil {
			return err
		}
	}

	movies := make([]models.Movie, len(mirrored))
	for i, m := range mirrored {
		movies[i] = m.Movie
	}

	header := "Mirror query"
	if run != nil {
		count, err := runs.Count()
		if err != nil {
			return err
		}
		header = fmt.Sprintf("Mirror query (synced %s from %s, %d runs)", run.SyncedAt.Format("2006-01-02 15:04"), run.Source, count)
	}
	return r.printMovies(header, movies, cmd.Bool("json"))
}

// CatalogExport writes the catalog as CSV to --output, or to standard output when no path is given.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	data, err := formatter.CatalogToCSV(c.ListAll())
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		return r.writePlain("%s", data)
	}

	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}

	r.logger.Info("catalog exported", "path", path, "movies", c.Len())
	return r.writePlain("✓ Exported %d movies to %s\n", c.Len(), path)
}

func (r *Runner) printMovies(header string, movies []models.Movie, asJSON bool) error {
	if asJSON {
		return r.writeJSON(toMovieJSON(movies), true)
	}

	r.writePlainHeader(header)
	if len(movies) == 0 {
		return r.writePlain("No movies found\n")
	}

	for i, m := range movies {
		if err := r.writePlain("%d. %s\n", i+1, m.String()); err != nil {
			return err
		}
	}
	return r.writePlain("\n%d movies\n", len(movies))
}

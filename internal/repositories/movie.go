package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

const movieColumns = `id, sequence, title, director, release_year, running_time, created_at, updated_at, deleted_at`

// MovieRepository persists [models.MirroredMovie] rows.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts movie with a generated ID and the next sequence number.
func (r *MovieRepository) Create(movie *models.MirroredMovie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertMovie(tx, movie); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie: %w", err)
	}
	return nil
}

// Get retrieves a movie by ID, excluding soft-deleted movies
func (r *MovieRepository) Get(id string) (*models.MirroredMovie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ? AND deleted_at IS NULL`
	return scanMovie(r.db.QueryRow(query, id))
}

// GetByTitle retrieves the active movie with exactly this title.
func (r *MovieRepository) GetByTitle(title string) (*models.MirroredMovie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = ? AND deleted_at IS NULL`
	return scanMovie(r.db.QueryRow(query, title))
}

// Delete soft-deletes a movie by ID
func (r *MovieRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE movies SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, id)
	}

	return nil
}

// List retrieves active movies in sequence order.
//
// Supported criteria: "director" and "title" (case-insensitive substring, string) and "year" (exact, int).
func (r *MovieRepository) List(criteria map[string]any) ([]*models.MirroredMovie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE deleted_at IS NULL`
	args := []any{}

	if director, ok := criteria["director"].(string); ok && director != "" {
		query += " AND LOWER(director) LIKE ?"
		args = append(args, "%"+strings.ToLower(director)+"%")
	}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND LOWER(title) LIKE ?"
		args = append(args, "%"+strings.ToLower(title)+"%")
	}

	if year, ok := criteria["year"].(int); ok && year > 0 {
		query += " AND release_year = ?"
		args = append(args, year)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.MirroredMovie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Sync replaces every mirrored movie with movies and records the run, all in one transaction.
//
// Either the whole snapshot lands or the mirror is left as it was. Returns the number of rows written.
func (r *MovieRepository) Sync(source string, movies []models.Movie) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM movies`); err != nil {
		return 0, fmt.Errorf("failed to clear mirror: %w", err)
	}

	for _, movie := range movies {
		mirrored := models.NewMirroredMovie(0, movie)
		if err := mirrored.Validate(); err != nil {
			return 0, fmt.Errorf("movie %q: %w", movie.Title(), err)
		}
		if err := insertMovie(tx, mirrored); err != nil {
			return 0, err
		}
	}

	if err := insertSyncRun(tx, source, len(movies)); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sync: %w", err)
	}

	return len(movies), nil
}

// insertMovie assigns an ID and sequence to movie and inserts it using q.
func insertMovie(q execQuerier, movie *models.MirroredMovie) error {
	sequence, err := NextSequence(q, "movies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	movie.SetID(shared.GenerateID())
	movie.SetSequence(sequence)

	query := `
		INSERT INTO movies (id, sequence, title, director, release_year, running_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = q.Exec(query,
		movie.ID(),
		movie.Sequence(),
		movie.Title(),
		movie.Director(),
		movie.ReleaseYear(),
		movie.RunningTime(),
		movie.CreatedAt(),
		movie.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie %q: %w", movie.Title(), err)
	}

	return nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (*models.MirroredMovie, error) {
	var (
		id          string
		sequence    int
		title       string
		director    string
		releaseYear int
		runningTime int
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &title, &director, &releaseYear, &runningTime, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	movie, err := models.NewMovie(title, director, releaseYear, runningTime)
	if err != nil {
		return nil, fmt.Errorf("mirror row %s: %w", id, err)
	}

	mirrored := models.NewMirroredMovie(sequence, *movie)
	mirrored.SetID(id)
	mirrored.SetCreatedAt(createdAt)
	mirrored.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		mirrored.SetDeletedAt(&deletedAt.Time)
	}

	return mirrored, nil
}

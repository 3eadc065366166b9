package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/shared"
)

// SyncRun records one rebuild of the mirror.
type SyncRun struct {
	ID         string
	Source     string
	MovieCount int
	SyncedAt   time.Time
}

// SyncRunRepository reads the sync history written by [MovieRepository.Sync].
type SyncRunRepository struct {
	db *sql.DB
}

func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Latest returns the most recent run, or nil when the mirror has never been synced.
func (r *SyncRunRepository) Latest() (*SyncRun, error) {
	query := `SELECT id, source, movie_count, synced_at FROM sync_runs ORDER BY synced_at DESC, rowid DESC LIMIT 1`

	var run SyncRun
	err := r.db.QueryRow(query).Scan(&run.ID, &run.Source, &run.MovieCount, &run.SyncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest sync run: %w", err)
	}
	return &run, nil
}

// Count returns the number of recorded runs.
func (r *SyncRunRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM sync_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sync runs: %w", err)
	}
	return n, nil
}

func insertSyncRun(q execQuerier, source string, count int) error {
	_, err := q.Exec(
		`INSERT INTO sync_runs (id, source, movie_count, synced_at) VALUES (?, ?, ?, ?)`,
		shared.GenerateID(), source, count, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

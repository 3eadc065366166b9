package watchlist

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/shared"
)

// Store holds every user's watchlist in memory and mirrors it to a backing file.
//
// It is not safe for concurrent use.
type Store struct {
	path   string
	lists  map[string][]string
	order  []string
	logger *log.Logger
}

// Option configures a [Store].
type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore loads the watchlist file at path.
//
// A missing file is an empty store; any other read failure is returned. Malformed lines are skipped and repeated
// titles are collapsed.
func NewStore(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, lists: make(map[string][]string), logger: shared.DiscardLogger()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// AddMovie appends title to the user's list and persists the change.
//
// Adding a title already on the list does nothing. If the file cannot be rewritten the list is restored and the
// error returned.
func (s *Store) AddMovie(username, title string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	titles, known := s.lists[username]
	if slices.Contains(titles, title) {
		return nil
	}

	s.lists[username] = append(slices.Clone(titles), title)
	if !known {
		s.order = append(s.order, username)
	}

	if err := s.save(); err != nil {
		s.restore(username, titles, known)
		return err
	}

	s.logger.Debug("watchlist entry added", "username", username, "title", title)
	return nil
}

// RemoveMovie deletes title from the user's list, reporting whether it was there.
//
// If the file cannot be rewritten the list is restored and the error returned.
func (s *Store) RemoveMovie(username, title string) (bool, error) {
	titles, known := s.lists[username]
	i := slices.Index(titles, title)
	if i < 0 {
		return false, nil
	}

	s.lists[username] = slices.Delete(slices.Clone(titles), i, i+1)

	if err := s.save(); err != nil {
		s.restore(username, titles, known)
		return false, err
	}

	s.logger.Debug("watchlist entry removed", "username", username, "title", title)
	return true, nil
}

// ListForUser returns a copy of the user's titles in the order they were added. Unknown users get an empty list.
func (s *Store) ListForUser(username string) []string {
	titles := s.lists[username]
	if titles == nil {
		return []string{}
	}
	return slices.Clone(titles)
}

// Users returns every username with a line in the file, in file order.
func (s *Store) Users() []string {
	return slices.Clone(s.order)
}

// Snapshot returns a deep copy of every list.
func (s *Store) Snapshot() map[string][]string {
	snap := make(map[string][]string, len(s.lists))
	for username, titles := range s.lists {
		snap[username] = slices.Clone(titles)
	}
	return snap
}

func (s *Store) restore(username string, titles []string, known bool) {
	if known {
		s.lists[username] = titles
		return
	}

	delete(s.lists, username)
	if i := slices.Index(s.order, username); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Store) load() error {
	lines, err := shared.ReadLinesOrEmpty(s.path)
	if err != nil {
		return fmt.Errorf("failed to read watchlist: %w", err)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := decodeLine(line)
		if err != nil {
			s.logger.Warn("skipping watchlist line", "path", s.path, "line", i+1, "err", err)
			continue
		}

		existing, known := s.lists[e.username]
		if !known {
			s.order = append(s.order, e.username)
			s.lists[e.username] = e.titles
			continue
		}

		for _, title := range e.titles {
			if !slices.Contains(existing, title) {
				existing = append(existing, title)
			}
		}
		s.lists[e.username] = existing
	}

	s.logger.Debug("watchlist loaded", "path", s.path, "users", len(s.order))
	return nil
}

func (s *Store) save() error {
	lines := make([]string, 0, len(s.order))
	for _, username := range s.order {
		lines = append(lines, encodeLine(username, s.lists[username]))
	}

	if err := shared.WriteLines(s.path, lines); err != nil {
		return fmt.Errorf("failed to write watchlist: %w", err)
	}
	return nil
}

// Equal reports whether two snapshots hold the same users and titles in the same order.
func Equal(a, b map[string][]string) bool {
	return maps.EqualFunc(a, b, slices.Equal[[]string, string])
}

package credentials

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

const fieldSep = ":"

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(username, password string) (bool, error)
}

// Store is a credentials file. It keeps no state between calls.
type Store struct {
	path   string
	hasher Hasher
	logger *log.Logger
}

// Option configures a [Store].
type Option func(*Store)

// WithHasher sets how passwords are written and verified. The default is [PlainHasher].
func WithHasher(h Hasher) Option {
	return func(s *Store) {
		if h != nil {
			s.hasher = h
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a [Store] backed by the file at path. The file does not need to exist yet.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, hasher: PlainHasher{}, logger: shared.DiscardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Register adds a new user.
//
// It returns false with no error when the username is taken. Invalid input and write failures are errors.
func (s *Store) Register(username, password string) (bool, error) {
	if _, err := models.NewCredential(username, password); err != nil {
		return false, err
	}

	records, err := s.load()
	if err != nil {
		return false, err
	}

	if _, exists := records[username]; exists {
		s.logger.Debug("registration rejected, username taken", "username", username)
		return false, nil
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	records[username] = stored

	if err := s.save(records); err != nil {
		return false, err
	}

	s.logger.Info("user registered", "username", username)
	return true, nil
}

// Authenticate reports whether password matches the stored value for username. Unknown users are false.
func (s *Store) Authenticate(username, password string) (bool, error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}

	stored, ok := records[username]
	if !ok {
		return false, nil
	}

	ok, err = s.hasher.Verify(password, stored)
	if err != nil {
		return false, fmt.Errorf("user %s: %w", username, err)
	}
	return ok, nil
}

// Usernames returns every registered username in sorted order.
func (s *Store) Usernames() ([]string, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) load() (map[string]string, error) {
	lines, err := shared.ReadLinesOrEmpty(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	records := make(map[string]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		username, password, ok := parseLine(line)
		if !ok {
			s.logger.Warn("skipping malformed credentials line", "path", s.path, "line", i+1)
			continue
		}

		// a later line for the same username replaces the earlier one
		records[username] = password
	}
	return records, nil
}

func (s *Store) save(records map[string]string) error {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = formatLine(name, records[name])
	}

	if err := shared.WriteLines(s.path, lines); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	s.logger.Debug("credentials rewritten", "path", s.path, "users", len(lines))
	return nil
}

// parseLine splits a "username":"password" line on its first separator. Quotes are optional.
func parseLine(line string) (username, password string, ok bool) {
	rawUser, rawPass, found := strings.Cut(line, fieldSep)
	if !found {
		return "", "", false
	}

	username = unquote(rawUser)
	password = unquote(rawPass)
	if username == "" {
		return "", "", false
	}
	return username, password, true
}

func formatLine(username, password string) string {
	return `"` + username + `"` + fieldSep + `"` + password + `"`
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

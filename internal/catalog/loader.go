package catalog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// Loader reads and edits a catalog backing file.
type Loader struct {
	path   string
	schema Schema
	logger *log.Logger
}

// LoaderOption configures a [Loader].
type LoaderOption func(*Loader)

// WithSchema overrides [DefaultSchema].
func WithSchema(s Schema) LoaderOption {
	return func(l *Loader) { l.schema = s }
}

// WithLogger sets the logger used for load and rewrite events.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a [Loader] for the backing file at path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{path: path, schema: DefaultSchema, logger: shared.DiscardLogger()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the backing file path.
func (l *Loader) Path() string { return l.path }

// LoadFromFile builds a new [Catalog] from the backing file.
//
// The first line is a header. A missing or unreadable file is an error, as is any row that cannot be
// parsed; the error names the offending line. Rows repeating an earlier title are skipped.
func (l *Loader) LoadFromFile() (*Catalog, error) {
	if err := l.schema.Validate(); err != nil {
		return nil, err
	}

	lines, err := shared.ReadLines(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", l.path, err)
	}

	catalog := New()
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		movie, err := l.parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("catalog %s line %d: %w", l.path, i+1, err)
		}

		if !catalog.Add(movie) {
			l.logger.Debug("skipping duplicate catalog title", "title", movie.Title(), "line", i+1)
		}
	}

	l.logger.Debug("catalog loaded", "path", l.path, "movies", catalog.Len())
	return catalog, nil
}

// DeleteByTitle removes every row whose title matches title, ignoring case and surrounding spaces.
//
// The file is rewritten only when a row was dropped; otherwise it is left untouched and false is returned.
// The header and rows that cannot be split are always kept. Any in-memory [Catalog] is not modified.
// A rewritten file uses LF line endings and ends with a newline, even if it was read with CRLF.
func (l *Loader) DeleteByTitle(title string) (bool, error) {
	lines, err := shared.ReadLines(l.path)
	if err != nil {
		return false, fmt.Errorf("failed to read catalog %s: %w", l.path, err)
	}

	target := strings.TrimSpace(title)
	if target == "" {
		return false, nil
	}

	kept := make([]string, 0, len(lines))
	dropped := 0
	for i, line := range lines {
		if i > 0 && l.titleMatches(line, target) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}

	if dropped == 0 {
		return false, nil
	}

	if err := shared.WriteLines(l.path, kept); err != nil {
		return false, fmt.Errorf("failed to rewrite catalog: %w", err)
	}

	l.logger.Debug("catalog rows deleted", "title", title, "rows", dropped)
	return true, nil
}

// AppendMovie adds a row for movie at the end of the backing file, creating the file with a header when missing.
//
// It does not check for duplicates; add the movie to the in-memory [Catalog] first and append only when that succeeds.
func (l *Loader) AppendMovie(movie *models.Movie) error {
	if movie == nil {
		return fmt.Errorf("%w: nil movie", shared.ErrInvalidInput)
	}
	if err := movie.Validate(); err != nil {
		return err
	}

	lines, err := shared.ReadLinesOrEmpty(l.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", l.path, err)
	}

	if len(lines) == 0 {
		lines = append(lines, l.schema.Header())
	}
	lines = append(lines, l.schema.Format(movie))

	if err := shared.WriteLines(l.path, lines); err != nil {
		return fmt.Errorf("failed to append to catalog: %w", err)
	}

	l.logger.Debug("catalog row appended", "title", movie.Title())
	return nil
}

func (l *Loader) parseLine(line string) (*models.Movie, error) {
	fields, err := SplitLine(line)
	if err != nil {
		return nil, err
	}
	return l.schema.Parse(fields)
}

func (l *Loader) titleMatches(line, target string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}

	fields, err := SplitLine(line)
	if err != nil {
		return false
	}

	title, ok := l.schema.Field(fields, ColumnTitle)
	return ok && strings.EqualFold(title, target)
}

// LoadFromFile builds a [Catalog] from the file at path using [DefaultSchema].
func LoadFromFile(path string) (*Catalog, error) {
	return NewLoader(path).LoadFromFile()
}

// DeleteByTitle removes rows titled title from the file at path using [DefaultSchema].
func DeleteByTitle(path, title string) (bool, error) {
	return NewLoader(path).DeleteByTitle(title)
}

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

// Column names a field of a catalog row.
type Column string

const (
	ColumnIndex    Column = "index"
	ColumnTitle    Column = "title"
	ColumnYear     Column = "year"
	ColumnRuntime  Column = "runtime"
	ColumnGenre    Column = "genre"
	ColumnRating   Column = "rating"
	ColumnDirector Column = "director"
)

// Placeholder values written for columns the catalog does not track.
const (
	placeholderGenre  = " genre"
	placeholderRating = " 0"
)

// Schema is the ordered list of columns in a catalog row.
type Schema []Column

// DefaultSchema is the layout of the catalog backing file.
var DefaultSchema = Schema{ColumnIndex, ColumnTitle, ColumnYear, ColumnRuntime, ColumnGenre, ColumnRating, ColumnDirector}

// Position returns the zero-based index of column, or -1 when the schema lacks it.
func (s Schema) Position(column Column) int {
	for i, c := range s {
		if c == column {
			return i
		}
	}
	return -1
}

// Validate checks that the schema has the columns a [models.Movie] needs, each once.
func (s Schema) Validate() error {
	seen := make(map[Column]bool, len(s))
	for _, c := range s {
		if seen[c] {
			return fmt.Errorf("%w: duplicate column %q in schema", shared.ErrInvalidArgument, c)
		}
		seen[c] = true
	}

	for _, c := range []Column{ColumnTitle, ColumnYear, ColumnRuntime, ColumnDirector} {
		if !seen[c] {
			return fmt.Errorf("%w: schema is missing column %q", shared.ErrInvalidArgument, c)
		}
	}
	return nil
}

// Header returns the header line for a new backing file.
func (s Schema) Header() string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}

// Field returns the trimmed value of column in fields.
func (s Schema) Field(fields []string, column Column) (string, bool) {
	pos := s.Position(column)
	if pos < 0 || pos >= len(fields) {
		return "", false
	}
	return strings.TrimSpace(fields[pos]), true
}

// Parse converts the split fields of one row into a [models.Movie].
//
// A missing column or an unparsable year is an error; an unparsable running time becomes 0.
func (s Schema) Parse(fields []string) (*models.Movie, error) {
	if len(fields) < len(s) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", shared.ErrMalformedRecord, len(s), len(fields))
	}

	title, _ := s.Field(fields, ColumnTitle)
	director, _ := s.Field(fields, ColumnDirector)
	rawYear, _ := s.Field(fields, ColumnYear)
	rawRuntime, _ := s.Field(fields, ColumnRuntime)

	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, fmt.Errorf("%w: release year %q is not a number", shared.ErrMalformedRecord, rawYear)
	}

	movie, err := models.NewMovie(title, director, year, ParseRunningTime(rawRuntime))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrMalformedRecord, err)
	}
	return movie, nil
}

// Format renders movie as a row in schema order.
//
// With [DefaultSchema] this is ",<title>,<year>,<runtime>, genre, 0,<director>".
func (s Schema) Format(movie *models.Movie) string {
	fields := make([]string, len(s))
	for i, c := range s {
		switch c {
		case ColumnTitle:
			fields[i] = quoteField(movie.Title())
		case ColumnYear:
			fields[i] = strconv.Itoa(movie.ReleaseYear())
		case ColumnRuntime:
			fields[i] = strconv.Itoa(movie.RunningTime())
		case ColumnGenre:
			fields[i] = placeholderGenre
		case ColumnRating:
			fields[i] = placeholderRating
		case ColumnDirector:
			fields[i] = quoteField(movie.Director())
		}
	}
	return strings.Join(fields, ",")
}

// SplitLine splits one catalog line on commas that are not inside double quotes.
func SplitLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	fields, err := r.Read()
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedRecord, err)
	}
	return fields, nil
}

// ParseRunningTime keeps only the digits of raw ("148 min" is 148) and returns 0 when none remain.
func ParseRunningTime(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	minutes, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return minutes
}

// quoteField wraps value in double quotes when it contains a comma or a quote.
func quoteField(value string) string {
	if !strings.ContainsAny(value, ",\"") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

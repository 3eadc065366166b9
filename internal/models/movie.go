package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mvx/internal/shared"
)

// Movie is a catalog entry. The title is its identity and cannot change after construction.
type Movie struct {
	title       string
	director    string
	releaseYear int
	runningTime int
}

// NewMovie builds a validated [Movie].
//
// The title must not be blank or carry surrounding spaces, the release year must be positive and the running time
// (minutes) must not be negative. Surrounding spaces are trimmed from the director.
func NewMovie(title, director string, releaseYear, runningTime int) (*Movie, error) {
	m := &Movie{
		title:       title,
		director:    strings.TrimSpace(director),
		releaseYear: releaseYear,
		runningTime: runningTime,
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Movie) Key() string      { return m.title }
func (m *Movie) Title() string    { return m.title }
func (m *Movie) Director() string { return m.director }
func (m *Movie) ReleaseYear() int { return m.releaseYear }
func (m *Movie) RunningTime() int { return m.runningTime }

// SetDirector replaces the director name, trimming surrounding spaces.
func (m *Movie) SetDirector(director string) {
	m.director = strings.TrimSpace(director)
}

// SetReleaseYear replaces the release year, leaving the movie unchanged when year is not positive.
func (m *Movie) SetReleaseYear(year int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	m.releaseYear = year
	return nil
}

// SetRunningTime replaces the running time, leaving the movie unchanged when minutes is negative.
func (m *Movie) SetRunningTime(minutes int) error {
	if err := validateRunningTime(minutes); err != nil {
		return err
	}
	m.runningTime = minutes
	return nil
}

// Validate checks the title, release year and running time.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.title) == "" {
		return fmt.Errorf("%w: movie title must not be empty", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(m.title) != m.title {
		return fmt.Errorf("%w: movie title %q has leading or trailing spaces", shared.ErrInvalidInput, m.title)
	}
	if strings.ContainsAny(m.title, "\r\n") {
		return fmt.Errorf("%w: movie title must be a single line", shared.ErrInvalidInput)
	}
	if err := validateYear(m.releaseYear); err != nil {
		return err
	}
	return validateRunningTime(m.runningTime)
}

// String formats the movie as "Title (Year), Directed by Director, Running time: N minutes".
func (m *Movie) String() string {
	return fmt.Sprintf("%s (%d), Directed by %s, Running time: %d minutes", m.title, m.releaseYear, m.director, m.runningTime)
}

func validateYear(year int) error {
	if year <= 0 {
		return fmt.Errorf("%w: release year must be positive, got %d", shared.ErrInvalidInput, year)
	}
	return nil
}

func validateRunningTime(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: running time must not be negative, got %d", shared.ErrInvalidInput, minutes)
	}
	return nil
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mvx/internal/models"
)

var (
	_ list.Item = movieItem{}
	_ list.Item = watchlistItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title() + " " + i.movie.Director() }
func (i movieItem) Title() string       { return i.movie.Title() }
func (i movieItem) Description() string {
	return describe(&i.movie)
}

// watchlistItem is a watchlist title with its catalog entry, if the catalog still has one.
type watchlistItem struct {
	title string
	movie *models.Movie
}

func (i watchlistItem) FilterValue() string { return i.title }
func (i watchlistItem) Title() string       { return i.title }
func (i watchlistItem) Description() string {
	if i.movie == nil {
		return "not in catalog"
	}
	return describe(i.movie)
}

func describe(m *models.Movie) string {
	desc := fmt.Sprintf("%d", m.ReleaseYear())
	if m.Director() != "" {
		desc = fmt.Sprintf("%s • %s", desc, m.Director())
	}
	if m.RunningTime() > 0 {
		desc = fmt.Sprintf("%s • %d min", desc, m.RunningTime())
	}
	return desc
}

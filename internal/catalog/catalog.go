package catalog

import (
	"strings"

	"github.com/desertthunder/mvx/internal/models"
)

// Catalog is an ordered set of movies keyed by exact title.
//
// It is not safe for concurrent use.
type Catalog struct {
	order  []string
	movies map[string]*models.Movie
}

// New returns an empty [Catalog].
func New() *Catalog {
	return &Catalog{movies: make(map[string]*models.Movie)}
}

// Add inserts movie unless an entry with the same title exists. Nil or invalid movies are rejected.
func (c *Catalog) Add(movie *models.Movie) bool {
	if movie == nil || movie.Validate() != nil {
		return false
	}

	if _, exists := c.movies[movie.Title()]; exists {
		return false
	}

	c.movies[movie.Title()] = movie
	c.order = append(c.order, movie.Title())
	return true
}

// Remove deletes the entry with exactly this title and reports whether one existed.
func (c *Catalog) Remove(title string) bool {
	if _, exists := c.movies[title]; !exists {
		return false
	}

	delete(c.movies, title)
	for i, t := range c.order {
		if t == title {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns the entry with exactly this title.
func (c *Catalog) Get(title string) (*models.Movie, bool) {
	movie, ok := c.movies[title]
	return movie, ok
}

// ListAll returns copies of every movie in insertion order.
func (c *Catalog) ListAll() []models.Movie {
	list := make([]models.Movie, 0, len(c.order))
	for _, title := range c.order {
		list = append(list, *c.movies[title])
	}
	return list
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Search returns copies of the movies whose title or director contains query, ignoring case.
// A blank query matches everything.
func (c *Catalog) Search(query string) []models.Movie {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return c.ListAll()
	}

	var found []models.Movie
	for _, title := range c.order {
		movie := c.movies[title]
		if strings.Contains(strings.ToLower(movie.Title()), needle) ||
			strings.Contains(strings.ToLower(movie.Director()), needle) {
			found = append(found, *movie)
		}
	}
	return found
}

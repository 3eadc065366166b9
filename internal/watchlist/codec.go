package watchlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/mvx/internal/shared"
)

const (
	fieldSep = ":"
	itemSep  = ",,"
)

// entry is one decoded line of the watchlist file.
type entry struct {
	username string
	titles   []string
}

// decodeLine splits a line on the first [fieldSep] and its remainder on [itemSep].
//
// Empty titles and repeats within the line are dropped. A line without a separator or username is malformed.
func decodeLine(line string) (entry, error) {
	username, rest, found := strings.Cut(line, fieldSep)
	if !found || username == "" {
		return entry{}, fmt.Errorf("%w: expected username%stitles", shared.ErrMalformedRecord, fieldSep)
	}

	e := entry{username: username, titles: []string{}}
	if rest == "" {
		return e, nil
	}

	for _, title := range strings.Split(rest, itemSep) {
		if title == "" || slices.Contains(e.titles, title) {
			continue
		}
		e.titles = append(e.titles, title)
	}
	return e, nil
}

func encodeLine(username string, titles []string) string {
	return username + fieldSep + strings.Join(titles, itemSep)
}

// validateUsername rejects names that could not be read back from the file.
func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", shared.ErrInvalidInput)
	}
	if strings.ContainsAny(username, fieldSep+"\r\n") {
		return fmt.Errorf("%w: username %q contains a reserved character", shared.ErrInvalidInput, username)
	}
	return nil
}

// validateTitle rejects titles that would split into several entries when read back.
func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", shared.ErrInvalidInput)
	}
	if strings.ContainsAny(title, "\r\n") || strings.Contains(title, itemSep) {
		return fmt.Errorf("%w: title %q contains a reserved sequence", shared.ErrInvalidInput, title)
	}
	if strings.HasPrefix(title, ",") || strings.HasSuffix(title, ",") {
		return fmt.Errorf("%w: title %q cannot start or end with a comma", shared.ErrInvalidInput, title)
	}
	return nil
}

package poststats

import (
	"errors"
	"strings"
)

// Location is the position of the stats block relative to the article content.
type Location string

const (
	// LocationBeginning puts the stats block before the content.
	LocationBeginning Location = "beginning"
	// LocationEnd puts the stats block after the content.
	LocationEnd Location = "end"

	// DefaultTitle is the stats block title used until the operator sets one.
	DefaultTitle = "Post stats"
)

// ErrInvalidLocation is returned for a location other than beginning or end.
var ErrInvalidLocation = errors.New("display location must be beginning or end of the post")

// ParseLocation parses a location value. Besides "beginning" and "end" the
// legacy stored values "0" and "1" are accepted.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LocationBeginning), "0":
		return LocationBeginning, nil
	case string(LocationEnd), "1":
		return LocationEnd, nil
	}

	return "", ErrInvalidLocation
}

// Valid reports whether l is one of the two locations.
func (l Location) Valid() bool {
	return l == LocationBeginning || l == LocationEnd
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return string(l)
}

// Options are the operator-selected display options.
type Options struct {
	Title           string   `json:"title"`
	ShowWordCount   bool     `json:"show_word_count"`
	ShowCharCount   bool     `json:"show_char_count"`
	ShowReadingTime bool     `json:"show_reading_time"`
	Location        Location `json:"location"`
}

// DefaultOptions returns the options used before any settings were saved.
func DefaultOptions() Options {
	return Options{
		Title:           DefaultTitle,
		ShowWordCount:   true,
		ShowCharCount:   false,
		ShowReadingTime: true,
		Location:        LocationBeginning,
	}
}

// Enabled reports whether at least one statistic is selected.
func (o Options) Enabled() bool {
	return o.ShowWordCount || o.ShowCharCount || o.ShowReadingTime
}

package textstats

import (
	"errors"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// WordsPerMinute is the reading speed used for the reading time estimate.
	WordsPerMinute = 225
)

// ErrParseContent is returned when the article markup can not be parsed.
var ErrParseContent = errors.New("failed to parse article content")

// Stats holds the computed statistics of one article.
type Stats struct {
	Words          int `json:"words"`
	Characters     int `json:"characters"`
	ReadingMinutes int `json:"reading_minutes"`
}

// bodyContext parses article content the way it sits inside <body>.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// StripMarkup removes all tags from content and returns its text.
// Entities are decoded, comments are dropped. Whitespace around and between
// tags is kept as it is in content.
func StripMarkup(content string) (string, error) {
	if content == "" {
		return "", nil
	}

	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext)
	if err != nil {
		return "", errors.Join(ErrParseContent, err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(goquery.NewDocumentFromNode(n).Text())
	}

	return sb.String(), nil
}

// CountWords counts the words of text.
// A word starts with a letter and continues over letters, apostrophes and hyphens,
// so "don't" and "well-known" are single words and digits separate words.
func CountWords(text string) int {
	var (
		words  int
		inWord bool
	)

	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			if !inWord {
				words++
				inWord = true
			}
		case inWord && (r == '\'' || r == '-'):
			// still inside the word
		default:
			inWord = false
		}
	}

	return words
}

// CountCharacters returns the number of characters of text, whitespace included.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// ReadingMinutes estimates the reading time for the given number of words,
// rounded to the nearest minute.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}

	return int(math.Round(float64(words) / WordsPerMinute))
}

// Compute strips the markup of content and counts its words and characters.
func Compute(content string) (Stats, error) {
	text, err := StripMarkup(content)
	if err != nil {
		return Stats{}, err
	}

	words := CountWords(text)

	return Stats{
		Words:          words,
		Characters:     CountCharacters(text),
		ReadingMinutes: ReadingMinutes(words),
	}, nil
}

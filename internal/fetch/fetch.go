// Package fetch downloads a web page and extracts its main article content.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"
)

const (
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodySize is the largest accepted page.
	DefaultMaxBodySize = 10 << 20
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
	ErrInvalidURL = errors.New("url must be an absolute http or https url")
	// ErrBodyTooLarge is returned when the page exceeds the size limit.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrNoContent is returned when no readable content was found.
	ErrNoContent = errors.New("no readable content found")
)

// Article is the extracted main content of a page.
type Article struct {
	Title   string
	Content string // HTML
}

// Fetcher downloads pages.
type Fetcher struct {
	Client      *http.Client
	Timeout     time.Duration
	MaxBodySize int64
	UserAgent   string
}

// New returns a Fetcher with the default limits.
func New() *Fetcher {
	return &Fetcher{
		Client:      &http.Client{Timeout: DefaultTimeout},
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
		UserAgent:   "poststats/1.0",
	}
}

// Article fetches rawURL and extracts its article with readability.
func (f *Fetcher) Article(ctx context.Context, rawURL string) (Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Article{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Article{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("http request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("http %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBodySize+1))
	if err != nil {
		return Article{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > f.MaxBodySize {
		return Article{}, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.MaxBodySize)
	}

	// the final url after redirects resolves relative links
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL
	}

	return Extract(bytes.NewReader(body), u)
}

// Extract runs readability over an HTML document.
func Extract(r io.Reader, pageURL *url.URL) (Article, error) {
	a, err := readability.FromReader(r, pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("readability: %w", err)
	}

	if a.Content == "" {
		return Article{}, ErrNoContent
	}

	return Article{Title: a.Title, Content: a.Content}, nil
}

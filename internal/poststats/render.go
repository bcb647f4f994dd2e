package poststats

import (
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/poststats/poststats/internal/i18n"
	"github.com/poststats/poststats/internal/metrics"
	"github.com/poststats/poststats/internal/textstats"
)

const blockTemplate = `{{if .Title}}<h3>{{.Title}}</h3> {{end}}<p>{{range .Lines}}{{.}}<br/>{{end}}</p>`

var block = template.Must(template.New("stats-block").Parse(blockTemplate))

// Result is the outcome of filtering one article.
type Result struct {
	Content  string          `json:"content"`
	Stats    textstats.Stats `json:"stats"`
	Injected bool            `json:"injected"`
}

// Renderer renders stats blocks in one language.
type Renderer struct {
	translator *i18n.Translator
}

// NewRenderer returns a Renderer for the given language tag.
func NewRenderer(lang string) *Renderer {
	return &Renderer{translator: i18n.New(lang)}
}

// Block renders the stats block for the selected statistics.
// The title is HTML escaped.
func (r *Renderer) Block(stats textstats.Stats, opts Options) (string, error) {
	lines := make([]string, 0, 3) //nolint: mnd

	if opts.ShowWordCount {
		lines = append(lines, r.translator.Count(i18n.MsgWords, stats.Words))
	}

	if opts.ShowCharCount {
		lines = append(lines, r.translator.Count(i18n.MsgCharacters, stats.Characters))
	}

	if opts.ShowReadingTime {
		lines = append(lines, r.translator.Count(i18n.MsgReadingMinutes, stats.ReadingMinutes))
	}

	var sb strings.Builder
	if err := block.Execute(&sb, struct {
		Title string
		Lines []string
	}{
		Title: opts.Title,
		Lines: lines,
	}); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Filter injects the stats block into content.
// Content is returned unchanged when single is false (list and archive views)
// or when no statistic is enabled.
func (r *Renderer) Filter(content string, opts Options, single bool) (Result, error) {
	if !single {
		metrics.RecordFilterSkipped(metrics.SkipNotSingle)
		return Result{Content: content}, nil
	}

	if !opts.Enabled() {
		metrics.RecordFilterSkipped(metrics.SkipNothingEnabled)
		return Result{Content: content}, nil
	}

	stats, err := textstats.Compute(content)
	if err != nil {
		return Result{Content: content}, err
	}

	html, err := r.Block(stats, opts)
	if err != nil {
		return Result{Content: content}, err
	}

	location := opts.Location
	if !location.Valid() {
		log.Warn().Str("location", string(location)).Msg("invalid stats block location, using beginning")

		location = LocationBeginning
	}

	out := html + content
	if location == LocationEnd {
		out = content + html
	}

	metrics.RecordBlockRendered(location.String(), stats.Words)

	return Result{
		Content:  out,
		Stats:    stats,
		Injected: true,
	}, nil
}

// Package metrics provides the prometheus metrics of the post stats add-on.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksRenderedTotal counts stats blocks spliced into article content by location.
	BlocksRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poststats_blocks_rendered_total",
			Help: "Number of stats blocks injected into article content.",
		},
		[]string{"location"},
	)

	// FilterSkippedTotal counts content passed through unchanged by reason.
	FilterSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poststats_filter_skipped_total",
			Help: "Number of filtered contents returned without a stats block.",
		},
		[]string{"reason"},
	)

	// SettingsSavedTotal counts settings form submissions that were stored.
	SettingsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poststats_settings_saved_total",
			Help: "Number of saved settings submissions.",
		},
	)

	// SettingsRejectedTotal counts rejected settings values by field.
	SettingsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poststats_settings_rejected_total",
			Help: "Number of rejected settings values.",
		},
		[]string{"field"},
	)

	// ArticleWords observes the word count of rendered articles.
	ArticleWords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poststats_article_words",
			Help:    "Word count of articles a stats block was rendered for.",
			Buckets: prometheus.ExponentialBuckets(50, 2, 10),
		},
	)
)

const (
	// SkipNotSingle is the skip reason for archive or list views.
	SkipNotSingle = "not_single"
	// SkipNothingEnabled is the skip reason when every statistic is switched off.
	SkipNothingEnabled = "nothing_enabled"
)

// RecordBlockRendered records an injected stats block.
func RecordBlockRendered(location string, words int) {
	BlocksRenderedTotal.WithLabelValues(location).Inc()
	ArticleWords.Observe(float64(words))
}

// RecordFilterSkipped records content returned unchanged.
func RecordFilterSkipped(reason string) {
	FilterSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordSettingsSaved records a stored settings submission.
func RecordSettingsSaved() {
	SettingsSavedTotal.Inc()
}

// RecordSettingRejected records a rejected settings field.
func RecordSettingRejected(field string) {
	SettingsRejectedTotal.WithLabelValues(field).Inc()
}

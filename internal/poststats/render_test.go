package poststats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poststats/poststats/internal/textstats"
)

func allOptions(location Location) Options {
	return Options{
		Title:           "Post stats",
		ShowWordCount:   true,
		ShowCharCount:   true,
		ShowReadingTime: true,
		Location:        location,
	}
}

func TestRendererBlock(t *testing.T) {
	r := NewRenderer("en")
	stats := textstats.Stats{Words: 450, Characters: 900, ReadingMinutes: 2}

	testCases := []struct {
		name     string
		opts     Options
		expected string
	}{
		{
			name: "all statistics",
			opts: allOptions(LocationBeginning),
			expected: "<h3>Post stats</h3> <p>This post has 450 words.<br/>" +
				"This post has 900 characters.<br/>" +
				"This post will take 2 minute(s) to read.<br/></p>",
		},
		{
			name:     "word count only",
			opts:     Options{Title: "Stats", ShowWordCount: true},
			expected: "<h3>Stats</h3> <p>This post has 450 words.<br/></p>",
		},
		{
			name:     "reading time without title",
			opts:     Options{ShowReadingTime: true},
			expected: "<p>This post will take 2 minute(s) to read.<br/></p>",
		},
		{
			name:     "title is escaped",
			opts:     Options{Title: "<script>x</script> & co", ShowCharCount: true},
			expected: "<h3>&lt;script&gt;x&lt;/script&gt; &amp; co</h3> <p>This post has 900 characters.<br/></p>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := r.Block(stats, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestRendererBlockTranslated(t *testing.T) {
	out, err := NewRenderer("de").Block(textstats.Stats{Words: 3}, Options{ShowWordCount: true})
	require.NoError(t, err)
	assert.Equal(t, "<p>Dieser Beitrag hat 3 Wörter.<br/></p>", out)
}

func TestRendererBlockLargeCounts(t *testing.T) {
	stats := textstats.Stats{Words: 1125, Characters: 6750, ReadingMinutes: 5}

	out, err := NewRenderer("en").Block(stats, Options{ShowWordCount: true, ShowCharCount: true, ShowReadingTime: true})
	require.NoError(t, err)
	assert.Equal(t, "<p>This post has 1125 words.<br/>This post has 6750 characters.<br/>"+
		"This post will take 5 minute(s) to read.<br/></p>", out)
}

func TestRendererFilter(t *testing.T) {
	const content = "<p>Hello big world</p>"

	r := NewRenderer("")

	t.Run("beginning", func(t *testing.T) {
		res, err := r.Filter(content, allOptions(LocationBeginning), true)
		require.NoError(t, err)

		assert.True(t, res.Injected)
		assert.True(t, strings.HasPrefix(res.Content, "<h3>Post stats</h3>"))
		assert.True(t, strings.HasSuffix(res.Content, content))
		assert.Equal(t, textstats.Stats{Words: 3, Characters: 15, ReadingMinutes: 0}, res.Stats)
		assert.Contains(t, res.Content, "This post has 3 words.")
		assert.Contains(t, res.Content, "This post has 15 characters.")
	})

	t.Run("end", func(t *testing.T) {
		res, err := r.Filter(content, allOptions(LocationEnd), true)
		require.NoError(t, err)

		assert.True(t, res.Injected)
		assert.True(t, strings.HasPrefix(res.Content, content))
		assert.True(t, strings.HasSuffix(res.Content, "</p>"))
		assert.Contains(t, res.Content, content+"<h3>Post stats</h3>")
	})

	t.Run("invalid location falls back to beginning", func(t *testing.T) {
		res, err := r.Filter(content, allOptions("middle"), true)
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(res.Content, content))
	})

	t.Run("not a single view", func(t *testing.T) {
		res, err := r.Filter(content, allOptions(LocationBeginning), false)
		require.NoError(t, err)

		assert.False(t, res.Injected)
		assert.Equal(t, content, res.Content)
		assert.Equal(t, textstats.Stats{}, res.Stats)
	})

	t.Run("nothing enabled", func(t *testing.T) {
		res, err := r.Filter(content, Options{Title: "x", Location: LocationEnd}, true)
		require.NoError(t, err)

		assert.False(t, res.Injected)
		assert.Equal(t, content, res.Content)
	})

	t.Run("empty content", func(t *testing.T) {
		res, err := r.Filter("", allOptions(LocationEnd), true)
		require.NoError(t, err)

		assert.True(t, res.Injected)
		assert.Contains(t, res.Content, "This post has 0 words.")
	})
}

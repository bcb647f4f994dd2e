package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		name     string
		lang     string
		expected language.Tag
	}{
		{name: "empty falls back to english", lang: "", expected: language.English},
		{name: "invalid tag falls back to english", lang: "not a tag!", expected: language.English},
		{name: "english", lang: "en", expected: language.English},
		{name: "german", lang: "de", expected: language.German},
		{name: "german region", lang: "de-AT", expected: language.German},
		{name: "serbian latin", lang: "sr-Latn", expected: serbianLatin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Match(tc.lang))
		})
	}
}

func TestTranslatorCount(t *testing.T) {
	testCases := []struct {
		lang     string
		key      string
		arg      int
		expected string
	}{
		{lang: "en", key: MsgWords, arg: 12, expected: "This post has 12 words."},
		{lang: "en", key: MsgCharacters, arg: 60, expected: "This post has 60 characters."},
		{lang: "en", key: MsgReadingMinutes, arg: 3, expected: "This post will take 3 minute(s) to read."},
		{lang: "de", key: MsgWords, arg: 12, expected: "Dieser Beitrag hat 12 Wörter."},
		{lang: "sr-Latn", key: MsgCharacters, arg: 7, expected: "Ovaj post ima 7 karaktera."},
		{lang: "en", key: MsgWords, arg: 1125, expected: "This post has 1125 words."},
		{lang: "de", key: MsgCharacters, arg: 1234567, expected: "Dieser Beitrag hat 1234567 Zeichen."},
	}

	for _, tc := range testCases {
		t.Run(tc.lang+" "+tc.key, func(t *testing.T) {
			assert.Equal(t, tc.expected, New(tc.lang).Count(tc.key, tc.arg))
		})
	}
}

func TestSupportedIsACopy(t *testing.T) {
	langs := Supported()
	langs[0] = language.French

	assert.Equal(t, language.English, Supported()[0])
}

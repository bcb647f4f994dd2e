// Package i18n holds the translated UI strings shown inside the stats block.
package i18n

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key. Counts are passed
// preformatted, so numbers are never grouped.
const (
	MsgWords          = "This post has %s words."
	MsgCharacters     = "This post has %s characters."
	MsgReadingMinutes = "This post will take %s minute(s) to read."
)

var (
	serbianLatin = language.MustParse("sr-Latn")

	// supported lists the catalog languages, the first entry is the fallback.
	supported = []language.Tag{language.English, language.German, serbianLatin}

	matcher = language.NewMatcher(supported)

	messages = catalog.NewBuilder(catalog.Fallback(language.English))
)

func init() { //nolint: gochecknoinits
	set := func(tag language.Tag, key, msg string) {
		if err := messages.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}

	set(language.English, MsgWords, MsgWords)
	set(language.English, MsgCharacters, MsgCharacters)
	set(language.English, MsgReadingMinutes, MsgReadingMinutes)

	set(language.German, MsgWords, "Dieser Beitrag hat %s Wörter.")
	set(language.German, MsgCharacters, "Dieser Beitrag hat %s Zeichen.")
	set(language.German, MsgReadingMinutes, "Das Lesen dieses Beitrags dauert %s Minute(n).")

	set(serbianLatin, MsgWords, "Ovaj post ima %s reči.")
	set(serbianLatin, MsgCharacters, "Ovaj post ima %s karaktera.")
	set(serbianLatin, MsgReadingMinutes, "Za čitanje ovog posta potrebno je %s minut(a).")
}

// Translator formats messages for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for lang (a BCP 47 tag like "de" or "sr-Latn").
// Unknown or empty languages fall back to English.
func New(lang string) *Translator {
	tag := Match(lang)

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Match returns the supported language closest to lang.
func Match(lang string) language.Tag {
	if lang == "" {
		return supported[0]
	}

	requested, err := language.Parse(lang)
	if err != nil {
		return supported[0]
	}

	_, idx, confidence := matcher.Match(requested)
	if confidence == language.No {
		return supported[0]
	}

	return supported[idx]
}

// Supported returns the languages with a message catalog.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)

	return out
}

// Tag returns the language of the translator.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Count formats the message registered under key with n as a plain integer.
func (t *Translator) Count(key string, n int) string {
	return t.printer.Sprintf(key, strconv.Itoa(n))
}

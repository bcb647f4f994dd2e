// Package options stores the post stats display options as flat keys in the
// settings key-value table.
package options

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/db/controller/setting"
	"github.com/poststats/poststats/internal/metrics"
	"github.com/poststats/poststats/internal/poststats"
	"github.com/poststats/poststats/internal/textstats"
)

const (
	// KeyLocation stores the stats block location.
	KeyLocation = "poststats_location"
	// KeyTitle stores the stats block title.
	KeyTitle = "poststats_title"
	// KeyWordCount stores whether the word count is shown.
	KeyWordCount = "poststats_display_word_count"
	// KeyCharCount stores whether the character count is shown.
	KeyCharCount = "poststats_display_char_count"
	// KeyReadingTime stores whether the reading time is shown.
	KeyReadingTime = "poststats_display_read_time"

	// LocationErrorMessage is shown when a submitted location is rejected.
	LocationErrorMessage = "Display location must be beginning or end of the post."

	checked   = "1"
	unchecked = "0"
)

// Form is a submitted settings form. Checkboxes are absent when unchecked.
type Form struct {
	Location    string `form:"poststats_location"           json:"location"          validate:"oneof=beginning end"`
	Title       string `form:"poststats_title"              json:"title"`
	WordCount   string `form:"poststats_display_word_count" json:"show_word_count"`
	CharCount   string `form:"poststats_display_char_count" json:"show_char_count"`
	ReadingTime string `form:"poststats_display_read_time"  json:"show_reading_time"`
}

// SaveResult reports the stored options and the messages of rejected fields.
type SaveResult struct {
	Options poststats.Options
	Errors  []string
}

var validate = validator.New()

// Load reads the display options. Missing keys fall back to their defaults.
func Load(db *gorm.DB) (poststats.Options, error) {
	values := make(map[string]string, len(fields))

	for _, f := range fields {
		v, err := setting.GetValue(db, f.Key, f.Default)
		if err != nil {
			return poststats.Options{}, err
		}

		values[f.Key] = v
	}

	return fromValues(values), nil
}

// Save validates and stores a submitted form in one transaction.
// A rejected location keeps its previously stored value while the remaining
// fields are still saved.
func Save(db *gorm.DB, form Form) (SaveResult, error) {
	var result SaveResult

	if db == nil {
		return result, setting.ErrDBNil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		location := form.Location

		if errValidate := validate.Struct(form); errValidate != nil {
			var validationErrors validator.ValidationErrors
			if !errors.As(errValidate, &validationErrors) {
				return errValidate
			}

			log.Warn().Str("location", form.Location).Msg("rejected invalid stats block location")
			metrics.RecordSettingRejected("location")

			result.Errors = append(result.Errors, LocationErrorMessage)

			prior, errGet := setting.GetValue(tx, KeyLocation, defaultLocation())
			if errGet != nil {
				return errGet
			}

			location = prior
		}

		values := map[string]string{
			KeyLocation:    location,
			KeyTitle:       SanitizeText(form.Title),
			KeyWordCount:   checkbox(form.WordCount),
			KeyCharCount:   checkbox(form.CharCount),
			KeyReadingTime: checkbox(form.ReadingTime),
		}

		for _, f := range fields {
			if _, errSet := setting.Set(tx, f.Key, []byte(values[f.Key])); errSet != nil {
				return errSet
			}
		}

		result.Options = fromValues(values)

		return nil
	})
	if err != nil {
		return SaveResult{}, err
	}

	metrics.RecordSettingsSaved()

	return result, nil
}

// Seed stores the default of every option that has no stored value yet.
func Seed(db *gorm.DB) error {
	for _, f := range fields {
		created, err := setting.SetDefault(db, f.Key, []byte(f.Default))
		if err != nil {
			return err
		}

		if created {
			log.Debug().Str("key", f.Key).Str("value", f.Default).Msg("seeded default option")
		}
	}

	return nil
}

// Reset removes every stored option so the defaults apply again.
func Reset(db *gorm.DB) error {
	for _, f := range fields {
		if err := setting.DeleteByName(db, f.Key); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
			return err
		}
	}

	return nil
}

// Values returns the form values of opts keyed by option key.
func Values(opts poststats.Options) map[string]string {
	return map[string]string{
		KeyLocation:    opts.Location.String(),
		KeyTitle:       opts.Title,
		KeyWordCount:   boolValue(opts.ShowWordCount),
		KeyCharCount:   boolValue(opts.ShowCharCount),
		KeyReadingTime: boolValue(opts.ShowReadingTime),
	}
}

// SanitizeText removes markup from s and collapses all whitespace, line
// breaks included, to single spaces.
func SanitizeText(s string) string {
	text, err := textstats.StripMarkup(s)
	if err != nil {
		text = s
	}

	return strings.Join(strings.Fields(text), " ")
}

func fromValues(values map[string]string) poststats.Options {
	location, err := poststats.ParseLocation(values[KeyLocation])
	if err != nil {
		log.Warn().Str("location", values[KeyLocation]).Msg("stored stats block location is invalid, using default")

		location = poststats.DefaultOptions().Location
	}

	return poststats.Options{
		Title:           values[KeyTitle],
		ShowWordCount:   truthy(values[KeyWordCount]),
		ShowCharCount:   truthy(values[KeyCharCount]),
		ShowReadingTime: truthy(values[KeyReadingTime]),
		Location:        location,
	}
}

// checkbox normalises a submitted checkbox value.
func checkbox(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case checked, "on", "true", "yes":
		return checked
	}

	return unchecked
}

func truthy(v string) bool {
	return v != "" && v != unchecked
}

func boolValue(b bool) string {
	if b {
		return checked
	}

	return unchecked
}

func defaultLocation() string {
	return poststats.DefaultOptions().Location.String()
}

package options

import (
	"github.com/poststats/poststats/internal/poststats"
)

// FieldKind is the input type of a settings form field.
type FieldKind string

const (
	// FieldSelect renders a select box.
	FieldSelect FieldKind = "select"
	// FieldText renders a text input.
	FieldText FieldKind = "text"
	// FieldCheckbox renders a checkbox.
	FieldCheckbox FieldKind = "checkbox"
)

// Choice is one option of a select field.
type Choice struct {
	Value string
	Label string
}

// Field describes one registered option.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Default string
	Choices []Choice
}

var fields = []Field{
	{
		Key:     KeyLocation,
		Label:   "Display location",
		Kind:    FieldSelect,
		Default: string(poststats.LocationBeginning),
		Choices: []Choice{
			{Value: string(poststats.LocationBeginning), Label: "Beginning of the post"},
			{Value: string(poststats.LocationEnd), Label: "End of the post"},
		},
	},
	{Key: KeyTitle, Label: "Stats title", Kind: FieldText, Default: poststats.DefaultTitle},
	{Key: KeyWordCount, Label: "Display word count", Kind: FieldCheckbox, Default: checked},
	{Key: KeyCharCount, Label: "Display character count", Kind: FieldCheckbox, Default: unchecked},
	{Key: KeyReadingTime, Label: "Display reading time", Kind: FieldCheckbox, Default: checked},
}

// Fields returns the registered option fields in form order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)

	return out
}

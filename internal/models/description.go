package models

import "fmt"

// DescriptionKind tags the origin of a description value.
type DescriptionKind int

const (
	// DescriptionAbsent means the field was missing or null.
	DescriptionAbsent DescriptionKind = iota
	// DescriptionText means the field held text (possibly empty).
	DescriptionText
	// DescriptionOther means the field held a non-text value, e.g. a number.
	DescriptionOther
)

// Description is a transaction description as it arrived from the input
// layer. Only DescriptionText values take part in keyword matching.
type Description struct {
	kind DescriptionKind
	text string
}

// TextDescription wraps a text value.
func TextDescription(s string) Description {
	return Description{kind: DescriptionText, text: s}
}

// AbsentDescription represents a missing description.
func AbsentDescription() Description {
	return Description{kind: DescriptionAbsent}
}

// OtherDescription represents a value that is not text. The raw value is kept
// only for display.
func OtherDescription(raw interface{}) Description {
	return Description{kind: DescriptionOther, text: fmt.Sprint(raw)}
}

// Kind returns the description tag.
func (d Description) Kind() DescriptionKind {
	return d.kind
}

// Text returns the matchable text and whether the description is non-empty text.
func (d Description) Text() (string, bool) {
	if d.kind != DescriptionText || d.text == "" {
		return "", false
	}
	return d.text, true
}

// String returns the description for display; absent values render empty.
func (d Description) String() string {
	return d.text
}

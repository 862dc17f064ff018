package models

import (
	"fmt"
	"strings"
)

// ErrorKind classifies problems recovered during synthesis.
type ErrorKind int

const (
	// NoMatchingRows means no row matched the requested component.
	NoMatchingRows ErrorKind = iota
	// MalformedStyleRange means a computed style range did not fit the text
	// and was dropped.
	MalformedStyleRange
	// MalformedTableRow means a props row had fewer than four cells and was
	// padded.
	MalformedTableRow
	// CategorySynthesisFailure means a whole category could not be built and
	// was skipped.
	CategorySynthesisFailure
)

var errorKindNames = map[ErrorKind]string{
	NoMatchingRows:           "no_matching_rows",
	MalformedStyleRange:      "malformed_style_range",
	MalformedTableRow:        "malformed_table_row",
	CategorySynthesisFailure: "category_synthesis_failure",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(text []byte) error {
	for kind, name := range errorKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", text)
}

// SynthesisError represents a recovered problem during synthesis.
type SynthesisError struct {
	Kind        ErrorKind `json:"kind"`
	Category    string    `json:"category,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
	// Detail is the offending source text or a short description.
	Detail string `json:"detail,omitempty"`
	Err    error  `json:"-"`
}

func (e *SynthesisError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Category != "" {
		fmt.Fprintf(&sb, " in category %q", e.Category)
	}
	if e.Subcategory != "" {
		fmt.Fprintf(&sb, " (%s)", e.Subcategory)
	}
	if e.Detail != "" {
		fmt.Fprintf(&sb, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// NewSynthesisError creates a new SynthesisError.
func NewSynthesisError(kind ErrorKind, category, subcategory, detail string, err error) *SynthesisError {
	return &SynthesisError{
		Kind:        kind,
		Category:    category,
		Subcategory: subcategory,
		Detail:      detail,
		Err:         err,
	}
}

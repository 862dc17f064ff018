package models

import "fmt"

// StyleKind is the inline style applied by a StyleRange.
type StyleKind int

const (
	// StyleBold marks text written as **text**.
	StyleBold StyleKind = iota
	// StyleCode marks text written as `text`.
	StyleCode
)

var styleKindNames = map[StyleKind]string{
	StyleBold: "bold",
	StyleCode: "code",
}

func (k StyleKind) String() string {
	if name, ok := styleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StyleKind(%d)", int(k))
}

// MarkupWidth returns the number of characters the markup of this kind adds
// around its content.
func (k StyleKind) MarkupWidth() int {
	if k == StyleBold {
		return 4
	}
	return 2
}

// MarshalText implements encoding.TextMarshaler.
func (k StyleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StyleKind) UnmarshalText(text []byte) error {
	for kind, name := range styleKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown style kind %q", text)
}

// StyleRange annotates a half-open range [Start, End) of stripped text.
// Offsets count runes, not bytes.
type StyleRange struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Kind  StyleKind `json:"kind"`
}

// Len returns the number of runes covered by the range.
func (r StyleRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no text. Renderers skip such ranges.
func (r StyleRange) Empty() bool {
	return r.End <= r.Start
}

// Within reports whether the range fits a text of n runes.
func (r StyleRange) Within(n int) bool {
	return r.Start >= 0 && r.End >= r.Start && r.End <= n
}

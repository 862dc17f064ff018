// Package output serializes synthesis results.
package output

import (
	"bytes"
	"encoding/json"
	"os"
)

// ToJSON serializes v. Pretty output is indented with two spaces. HTML
// characters are not escaped so guideline text stays readable.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON serializes v to the file at path.
func WriteJSON(path string, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

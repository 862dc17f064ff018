package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

func TestSplitTableRow(t *testing.T) {
	tests := []struct {
		line     string
		expected models.TableRow
		ok       bool
	}{
		{"size | string | md | size prop", models.TableRow{"size", "string", "md", "size prop"}, true},
		{"| size | string | md | size prop |", models.TableRow{"size", "string", "md", "size prop"}, true},
		{"size: controls size", models.TableRow{"size", "", "", "controls size"}, true},
		{"size:", models.TableRow{"size", "", "", ""}, true},
		{"just words", models.TableRow{"just words", "", "", ""}, false},
		{"size | controls size", models.TableRow{"size", "", "", "controls size"}, false},
		{"size | string | md", models.TableRow{"size", "string", "md", ""}, false},
		{"a | b | c | d | e", models.TableRow{"a", "b", "c", "d | e"}, true},
		{"disabled | boolean |  | turns it off", models.TableRow{"disabled", "boolean", "", "turns it off"}, true},
	}

	for _, tt := range tests {
		row, ok := SplitTableRow(tt.line)
		assert.Equal(t, tt.expected, row, "SplitTableRow(%q)", tt.line)
		assert.Equal(t, tt.ok, ok, "SplitTableRow(%q) ok", tt.line)
	}
}

func TestParseTableRows(t *testing.T) {
	t.Run("header line dropped", func(t *testing.T) {
		rows, malformed := ParseTableRows([]string{
			"Prop Name | Type | Default Value | Description",
			"size | string | md | size prop",
		})
		assert.Equal(t, []models.TableRow{{"size", "string", "md", "size prop"}}, rows)
		assert.Empty(t, malformed)
	})

	t.Run("markdown table", func(t *testing.T) {
		rows, _ := ParseTableRows([]string{
			"| Prop Name | Type | Default Value | Description |",
			"|---|:---:|---|---|",
			"| size | string | md | size prop |",
			"",
		})
		assert.Equal(t, []models.TableRow{{"size", "string", "md", "size prop"}}, rows)
	})

	t.Run("malformed rows kept", func(t *testing.T) {
		rows, malformed := ParseTableRows([]string{"a | b | c", "name: desc"})
		assert.Len(t, rows, 2)
		assert.Equal(t, []string{"a | b | c"}, malformed)
	})
}

func TestIsTableLine(t *testing.T) {
	assert.True(t, IsTableLine("a | b"))
	assert.False(t, IsTableLine("a: b"))
}

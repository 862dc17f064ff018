package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := "Component,Category,Subcategory,Guideline\n" +
		"Button,1. Description,,A button triggers an action\n" +
		"Button,3. Usage,Do,\"Keep labels short, clear\"\n" +
		"Button,2. Props,,\"size | string | md | size prop\"\n" +
		"Broken,row\n" +
		"\n"

	set, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Rejected)
	require.Len(t, set.Rows, 3)
	assert.Equal(t, "Keep labels short, clear", set.Rows[1].Guideline)
	assert.Equal(t, "size | string | md | size prop", set.Rows[2].Guideline)
}

func TestParseCSVMultilineCell(t *testing.T) {
	data := "Button,3. Usage,Do,\"first\r\nsecond\"\n"

	set, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	assert.Equal(t, "first\nsecond", set.Rows[0].Guideline)
}

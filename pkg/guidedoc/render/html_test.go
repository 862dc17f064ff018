package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	out, err := HTML(Markdown(buttonLayout(t)))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>Button</h1>")
	assert.Contains(t, html, "<h2>3. Usage</h2>")
	assert.Contains(t, html, "<h3>Do</h3>")
	assert.Contains(t, html, "<p>A <strong>button</strong> triggers an action</p>")
	assert.Contains(t, html, "<li>Use <code>primary</code> once</li>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Prop Name</th>")
	assert.Contains(t, html, "<td>Controls size</td>")
}

func TestHTMLPage(t *testing.T) {
	out, err := HTMLPage("Button <guidelines>", "# Button\n")
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>Button &lt;guidelines&gt;</title>")
	assert.Contains(t, page, "<h1>Button</h1>")
}

package render

import (
	"strings"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// Markdown exports a layout tree as Markdown: the component as the level one
// heading, categories and subcategories below it, bullets as list items and
// props tables as pipe tables. Style ranges are written back as **bold** and
// `code`. Image placeholders have no Markdown form and are left out.
func Markdown(root *models.Node) string {
	w := &markdownWriter{}
	_ = models.Walk(root, w.node)
	w.endList()
	return strings.TrimRight(w.sb.String(), "\n") + "\n"
}

type markdownWriter struct {
	sb     strings.Builder
	inList bool
}

func (w *markdownWriter) node(n *models.Node, _ int) error {
	switch n.Kind {
	case models.KindHeader:
		w.block("# " + plainText(n.Text))
	case models.KindTitleDivider:
		if n.Text != nil {
			w.block("## " + Styled(*n.Text))
		}
	case models.KindTextRun:
		w.text(n.Text)
	case models.KindTable:
		w.table(n.Table)
	}
	return nil
}

func (w *markdownWriter) text(run *models.TextRun) {
	if run == nil {
		return
	}
	switch {
	case run.Role == models.RoleSubcategoryTitle:
		w.block("### " + Styled(*run))
	case run.Bullet:
		w.inList = true
		w.sb.WriteString("- " + Styled(*run) + "\n")
	case run.Role == models.RoleNotice:
		w.block("_" + run.Content + "_")
	default:
		w.block(Styled(*run))
	}
}

func (w *markdownWriter) table(t *models.Table) {
	if t == nil {
		return
	}
	w.endList()

	labels := make([]string, len(t.Columns))
	rules := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
		rules[i] = "---"
	}
	w.row(labels)
	w.row(rules)

	cells := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i := range cells {
			cells[i] = ""
			if i < len(r.Cells) {
				cells[i] = escapeCell(Styled(r.Cells[i]))
			}
		}
		w.row(cells)
	}
	w.sb.WriteString("\n")
}

func (w *markdownWriter) row(cells []string) {
	w.sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func (w *markdownWriter) block(s string) {
	w.endList()
	w.sb.WriteString(s + "\n\n")
}

func (w *markdownWriter) endList() {
	if w.inList {
		w.sb.WriteString("\n")
		w.inList = false
	}
}

// Styled returns the content of run with its style ranges written back as
// Markdown. Empty ranges are ignored.
func Styled(run models.TextRun) string {
	if len(run.Ranges) == 0 {
		return run.Content
	}

	text := []rune(run.Content)
	var sb strings.Builder
	pos := 0
	for _, r := range run.Ranges {
		if r.Empty() || !r.Within(len(text)) || r.Start < pos {
			continue
		}
		marker := "`"
		if r.Kind == models.StyleBold {
			marker = "**"
		}
		sb.WriteString(string(text[pos:r.Start]))
		sb.WriteString(marker + string(text[r.Start:r.End]) + marker)
		pos = r.End
	}
	sb.WriteString(string(text[pos:]))
	return sb.String()
}

func plainText(run *models.TextRun) string {
	if run == nil {
		return ""
	}
	return run.Content
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", "<br>")
}

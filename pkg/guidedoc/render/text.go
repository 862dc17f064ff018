package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/markup"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// Text writes a plain text rendering of a layout tree to w. Titles are
// underlined, images are shown as bracketed placeholders and props tables
// are drawn as boxed tables.
func Text(w io.Writer, root *models.Node) error {
	bw := bufio.NewWriter(w)
	tw := &textWriter{w: bw}
	if err := models.Walk(root, tw.node); err != nil {
		return err
	}
	if tw.err != nil {
		return tw.err
	}
	return bw.Flush()
}

type textWriter struct {
	w   *bufio.Writer
	err error
}

func (t *textWriter) node(n *models.Node, _ int) error {
	switch n.Kind {
	case models.KindHeader:
		title := plainText(n.Text)
		t.printf("%s\n%s\n\n", title, strings.Repeat("=", utf8.RuneCountInString(title)))
	case models.KindTitleDivider:
		title := plainText(n.Text)
		t.printf("%s\n%s\n\n", title, strings.Repeat("-", utf8.RuneCountInString(title)))
	case models.KindTextRun:
		t.text(n.Text)
	case models.KindImagePlaceholder:
		if n.Image != nil {
			t.printf("[image: %s, %dx%d]\n\n", n.Image.Label, n.Image.W, n.Image.H)
		}
	case models.KindTable:
		if err := t.table(n.Table); err != nil {
			return err
		}
	}
	return t.err
}

func (t *textWriter) text(run *models.TextRun) {
	if run == nil {
		return
	}
	switch {
	case run.Role == models.RoleSubcategoryTitle:
		t.printf("%s\n", run.Content)
	case run.Bullet:
		t.printf("  %s%s\n", markup.BulletPrefix, run.Content)
	case run.Role == models.RoleNotice:
		t.printf("(%s)\n\n", run.Content)
	default:
		t.printf("%s\n\n", run.Content)
	}
}

func (t *textWriter) table(tbl *models.Table) error {
	if tbl == nil {
		return nil
	}

	table := tablewriter.NewWriter(t.w)
	header := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = col.Label
	}
	table.Header(header)

	for _, row := range tbl.Rows {
		values := row.Values()
		if err := table.Append(values[:]); err != nil {
			return fmt.Errorf("props table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("props table: %w", err)
	}
	t.printf("\n")
	return t.err
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

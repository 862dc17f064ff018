// Package markup resolves the inline markup allowed in guideline lines
// (**bold** and `code`) into plain text plus style ranges.
package markup

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/models"
)

// BulletPrefix is the bullet some sheets already carry in front of list items.
const BulletPrefix = "• "

var (
	boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codePattern = regexp.MustCompile("`(.*?)`")
)

// candidate is one markup span found in the raw line. Offsets are runes.
type candidate struct {
	start int
	kind  models.StyleKind
	inner string
}

// Resolve removes inline markup from raw and returns the stripped text with
// style ranges over it. Ranges that do not fit the stripped text are dropped.
func Resolve(raw string) (string, []models.StyleRange) {
	stripped, ranges, _ := resolve(raw)
	return stripped, ranges
}

// LineOptions controls ResolveLine.
type LineOptions struct {
	// Bullet marks the line as a list item: a leading BulletPrefix is removed
	// and the run is flagged instead.
	Bullet bool
	// Role and FontSize are copied to the run.
	Role     models.TextRole
	FontSize int
}

// ResolveLine resolves raw into a text run. Dropped ranges are returned as
// MalformedStyleRange errors, the run is usable regardless.
func ResolveLine(raw string, opts LineOptions) (models.TextRun, []*models.SynthesisError) {
	if opts.Bullet {
		raw = strings.TrimPrefix(raw, BulletPrefix)
	}
	stripped, ranges, dropped := resolve(raw)

	var errs []*models.SynthesisError
	for _, r := range dropped {
		errs = append(errs, models.NewSynthesisError(models.MalformedStyleRange, "", "",
			describeRange(raw, r), nil))
	}
	return models.TextRun{
		Content:  stripped,
		Ranges:   ranges,
		Bullet:   opts.Bullet,
		Role:     opts.Role,
		FontSize: opts.FontSize,
	}, errs
}

// Strip returns raw without inline markup.
func Strip(raw string) string {
	stripped := boldPattern.ReplaceAllString(raw, "$1")
	return codePattern.ReplaceAllString(stripped, "$1")
}

func resolve(raw string) (string, []models.StyleRange, []models.StyleRange) {
	candidates := scan(raw, boldPattern, models.StyleBold)
	candidates = append(candidates, scan(raw, codePattern, models.StyleCode)...)
	if len(candidates) == 0 {
		return raw, nil, nil
	}
	// Positions in the stripped text depend on how much markup precedes them.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start < candidates[j].start
	})

	stripped := Strip(raw)
	size := utf8.RuneCountInString(stripped)

	var (
		ranges  []models.StyleRange
		dropped []models.StyleRange
		offset  int
		lastEnd int
	)
	for _, c := range candidates {
		start := c.start - offset
		r := models.StyleRange{
			Start: start,
			End:   start + utf8.RuneCountInString(c.inner),
			Kind:  c.kind,
		}
		offset += c.kind.MarkupWidth()

		// overlapping source markup yields ranges that collide or escape the text
		if !r.Within(size) || r.Start < lastEnd {
			dropped = append(dropped, r)
			continue
		}
		ranges = append(ranges, r)
		lastEnd = r.End
	}
	return stripped, ranges, dropped
}

func scan(raw string, re *regexp.Regexp, kind models.StyleKind) []candidate {
	var found []candidate
	for _, loc := range re.FindAllStringSubmatchIndex(raw, -1) {
		found = append(found, candidate{
			start: utf8.RuneCountInString(raw[:loc[0]]),
			kind:  kind,
			inner: raw[loc[2]:loc[3]],
		})
	}
	return found
}

func describeRange(raw string, r models.StyleRange) string {
	const limit = 60
	if utf8.RuneCountInString(raw) > limit {
		raw = string([]rune(raw)[:limit]) + "..."
	}
	return fmt.Sprintf("%s range [%d,%d) does not fit %q", r.Kind, r.Start, r.End, raw)
}

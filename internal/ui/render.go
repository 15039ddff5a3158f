package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gqtodo/gqtodo/internal/model"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

// TodoLine renders one todo for the ls output, id first so it can be fed
// back to `done` and `rm`.
func TodoLine(td model.Todo) string {
	t := Current()
	box := C(t.Muted, t.BoxUnchecked)
	title := td.Title
	if td.Done {
		box = C(t.Success, t.BoxChecked)
		title = C(t.Muted, title)
	}
	return fmt.Sprintf("%s %s %s", C(t.Accent, fmt.Sprintf("#%d", td.ID)), box, title)
}

// ProgressBar renders a Unicode progress bar with done/total counts.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) +
		fmt.Sprintf("] %d/%d", done, total)
}

// Panel draws a framed box around lines using the current theme.
func Panel(lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := len([]rune(stripANSI(ln))); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		vis := len([]rune(stripANSI(s)))
		if vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Println(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR)
	for _, ln := range lines {
		fmt.Println(t.V + " " + pad(ln) + " " + t.V)
	}
	fmt.Println(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR)
}

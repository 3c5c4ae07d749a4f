// Package render turns stored entry text into the HTML fragments shown in
// the diary list.
package render

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// UntitledLabel is shown for entries without a title.
const UntitledLabel = "Ohne Titel"

const dateLayout = "02.01.2006"

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)

	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("strong", "em", "br")
	return p
}

// FormatBody escapes text, applies **bold** and *italic* markers and turns
// newlines into <br>. The result only ever contains strong, em and br tags.
func FormatBody(text string) string {
	if text == "" {
		return ""
	}
	out := html.EscapeString(text)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicPattern.ReplaceAllString(out, "<em>$1</em>")
	out = strings.ReplaceAll(out, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\n", "<br>")
	return policy.Sanitize(out)
}

// FormatDate renders t as a German calendar date in loc (UTC when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

// DisplayTitle returns title or the untitled label.
func DisplayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return UntitledLabel
	}
	return title
}

package digest

import (
	"regexp"
	"strings"
)

// The upstream summarizer marks story starts inconsistently: sometimes real
// markdown headers, sometimes bolded labels, sometimes bare Title-Case lines.
// Normalize rewrites the two pseudo-header shapes into canonical "## Label"
// headers so segmentation has one structural signal to key on.
//
// Both rules require the whole line to match. A bold run longer than 60
// characters, a label with trailing prose, or a lowercase opening letter is
// left alone: under-matching beats restructuring unrelated emphasis.
var (
	// "**Market Update:**" — colon inside the bold markers.
	boldLabelRe = regexp.MustCompile(`(?m)^\*\*([^*\n]{3,60}):\*\*[ \t]*\r?$`)

	// "**Market Update**:" — colon after the bold markers.
	boldTrailColonRe = regexp.MustCompile(`(?m)^\*\*([^*\n]{3,60})\*\*:[ \t]*\r?$`)

	// "Market Update:" — a short Title-Case label line ending in a colon.
	// Total line length 5-81 characters including the colon.
	titleCaseLabelRe = regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9 &/'-]{3,79}):\r?$`)
)

// Normalize rewrites pseudo-header lines into canonical sub-headers followed
// by a blank line. The output is the input with zero or more such rewrites;
// empty and whitespace-only input comes back unchanged. Converted lines start
// with '#' and drop their colon, so neither rule can fire on them again.
//
// The bold rules run before the Title-Case rule. The Title-Case character
// class excludes '*', so the rules never compete for the same line; the
// order is still fixed here and pinned by tests.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := boldLabelRe.ReplaceAllString(text, "## $1\n")
	out = boldTrailColonRe.ReplaceAllString(out, "## $1\n")
	out = titleCaseLabelRe.ReplaceAllString(out, "## $1\n")
	return out
}

package digest

import (
	"regexp"
	"strings"
)

var (
	// storyMarkerRe matches a line that opens a story: one or two '#'
	// markers plus whitespace. Three or more markers is a sub-heading
	// and stays inside the surrounding story.
	storyMarkerRe = regexp.MustCompile(`^#{1,2}\s`)

	// subPointRe matches a line that opens an enumerated sub-point,
	// e.g. "1. " or "12. ".
	subPointRe = regexp.MustCompile(`^\d+\.\s`)
)

// Segment splits digest text into display cards: one per story, each with an
// optional body and the story's numbered sub-points in source order. Text is
// usually passed through Normalize first so bold and Title-Case pseudo-headers
// count as story boundaries.
//
// Segment is total: it never fails, and input without any recognizable
// structure degrades to a single card rather than being dropped.
func Segment(text string) []Card {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []Card{}
	}

	blocks := splitStories(trimmed)
	if len(blocks) < 2 {
		// No header boundaries anywhere: the whole digest is one story.
		blocks = []string{trimmed}
	}

	cards := make([]Card, 0, len(blocks))
	for _, block := range blocks {
		cards = append(cards, buildCard(block))
	}
	return cards
}

// splitStories splits text at line boundaries that open with a story marker.
// The very first line starts the first block whether or not it carries a
// marker, so any preamble before the first header survives as its own block.
// Blocks are trimmed and empty ones dropped.
func splitStories(text string) []string {
	lines := strings.Split(text, "\n")

	var blocks []string
	var current strings.Builder

	flush := func() {
		if b := strings.TrimSpace(current.String()); b != "" {
			blocks = append(blocks, b)
		}
		current.Reset()
	}

	for i, line := range lines {
		if i > 0 && storyMarkerRe.MatchString(line) {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return blocks
}

// buildCard derives one card from a story block: the opening header line (if
// any) becomes the title, the rest is split into body and sub-points.
func buildCard(block string) Card {
	lines := strings.Split(block, "\n")

	title := FallbackTitle
	rest := lines
	if storyMarkerRe.MatchString(lines[0]) {
		if t := strings.TrimSpace(strings.TrimLeft(lines[0], "#")); t != "" {
			title = t
		}
		rest = lines[1:]
	}

	body, subcards := splitSubPoints(rest)
	return Card{Title: title, Body: body, Subcards: subcards}
}

// splitSubPoints separates story lines into leading body text and numbered
// sub-point fragments. Lines before the first numeric marker form the body;
// each marker line starts a new fragment that runs until the next marker.
// A story whose lines open directly with a numeric marker has an empty body.
func splitSubPoints(lines []string) (string, []string) {
	var bodyLines []string
	var points []string
	var current []string
	inPoint := false

	flush := func() {
		if !inPoint {
			return
		}
		if p := strings.TrimSpace(strings.Join(current, "\n")); p != "" {
			points = append(points, p)
		}
		current = current[:0]
	}

	for _, line := range lines {
		if subPointRe.MatchString(line) {
			flush()
			inPoint = true
			current = append(current, line)
			continue
		}
		if inPoint {
			current = append(current, line)
		} else {
			bodyLines = append(bodyLines, line)
		}
	}
	flush()

	body := strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if points == nil {
		points = []string{}
	}
	return body, points
}

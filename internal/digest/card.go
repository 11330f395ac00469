package digest

// FallbackTitle labels a story whose opening line yields no usable title text.
const FallbackTitle = "Top story"

// Card is one story extracted from a digest, ready for a renderer.
type Card struct {
	Title    string   `json:"title"`    // Single-line story label.
	Body     string   `json:"body"`     // Narrative text before any numbered sub-points (may be empty).
	Subcards []string `json:"subcards"` // Enumerated sub-points, in source order.
}

// Heading is one entry of a digest outline.
type Heading struct {
	Level int    `json:"level"` // 1-6, as written in the markup.
	Title string `json:"title"`
}

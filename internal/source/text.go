package source

import (
	"fmt"
	"io"
	"strings"
)

// TextSource handles plain-text and markdown files, which already are digest
// text. Line endings are normalized; nothing else is touched.
type TextSource struct{}

func (s *TextSource) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// Package source extracts digest text from uploaded files. A digest usually
// arrives from the summarizer endpoint, but saved copies show up as plain
// text, markdown, HTML pages, PDFs, or Word documents; each extractor turns
// its format into the line-oriented text the segmenter works on, keeping
// heading structure as '#' marker lines.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Source converts one file format into digest text.
type Source interface {
	Extract(r io.Reader) (string, error)
}

// SupportedExtensions lists file extensions this service accepts.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the extractor for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		// Markdown is read as-is: its markers are exactly the structural
		// signal segmentation keys on, so it must never be flattened.
		return &TextSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

package source

import "testing"

func TestForFile_Dispatch(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"digest.txt", "*source.TextSource"},
		{"digest.md", "*source.TextSource"},
		{"digest.markdown", "*source.TextSource"},
		{"digest.html", "*source.HTMLSource"},
		{"digest.htm", "*source.HTMLSource"},
		{"Digest.PDF", "*source.PDFSource"},
		{"digest.docx", "*source.DOCXSource"},
	}
	for _, tt := range tests {
		src, err := ForFile(tt.filename)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		var got string
		switch src.(type) {
		case *TextSource:
			got = "*source.TextSource"
		case *HTMLSource:
			got = "*source.HTMLSource"
		case *PDFSource:
			got = "*source.PDFSource"
		case *DOCXSource:
			got = "*source.DOCXSource"
		}
		if got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	for _, filename := range []string{"digest.csv", "digest.exe", "digest", "archive.tar.gz"} {
		if _, err := ForFile(filename); err == nil {
			t.Errorf("%s: expected error for unsupported extension", filename)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("notes.MD") {
		t.Error("expected .MD to be supported")
	}
	if IsSupportedExtension("data.csv") {
		t.Error("expected .csv to be unsupported")
	}
	if IsSupportedExtension("noext") {
		t.Error("expected extensionless name to be unsupported")
	}
}

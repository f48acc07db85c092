package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextPlain(t *testing.T) {
	got, err := Text([]byte("  hello there \n"), "text/plain; charset=utf-8", "essay.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextDocxFromZipMime(t *testing.T) {
	data := buildDocx(t, "et essay om norsk historie")
	got, err := Text(data, "application/zip", "essay.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "et essay om norsk historie") {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTextRealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := Text(buf.Bytes(), "application/zip", "notes.zip"); err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
}

func TestTextBinaryRejected(t *testing.T) {
	if _, err := Text([]byte{0x00, 0x01, 0x02}, "application/octet-stream", "blob.bin"); err == nil {
		t.Fatal("expected error for binary payload")
	}
}

package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildDocx builds a minimal .docx archive with one <w:p> per paragraph.
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p w:rsidR="00000000"><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	docXML := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`
	contentTypes := `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Override PartName="/word/document.xml" ContentType="` + docxMainContentType + `"/></Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		contentTypesPath:    contentTypes,
		docxDocumentXMLPath: docXML,
	} {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDOCX_paragraphBlocks(t *testing.T) {
	content := buildDocx(t, []string{
		"Surgical procedures are covered at 80% after a 2-month waiting period.",
		"   ",
		"Claims in metro cities require prior authorization.",
	})
	blocks, err := extractDOCX(content)
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks: got %d, want 2 (%v)", len(blocks), blocks)
	}
	if !strings.Contains(blocks[0], "80%") {
		t.Errorf("first block: got %q", blocks[0])
	}
	if !strings.Contains(blocks[1], "prior authorization") {
		t.Errorf("second block: got %q", blocks[1])
	}
}

func TestExtractDOCX_multipleRunsOnePara(t *testing.T) {
	docXML := `<?xml version="1.0"?><w:document xmlns:w="http://x"><w:body>` +
		`<w:p><w:r><w:t>Waiting </w:t></w:r><w:r><w:t xml:space="preserve">period applies.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create(docxDocumentXMLPath)
	_, _ = f.Write([]byte(docXML))
	_ = zw.Close()

	blocks, err := extractDOCX(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0] != "Waiting period applies." {
		t.Errorf("blocks: got %v", blocks)
	}
}

func TestExtractDOCX_notAZip(t *testing.T) {
	if _, err := extractDOCX([]byte("plainly not a zip")); err == nil {
		t.Error("expected error for non-zip content")
	}
}

func TestExtractBytes_unsupportedExtension(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("hi"), ".xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestExtractBlocks_readsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.docx")
	if err := os.WriteFile(path, buildDocx(t, []string{"Clause one.", "Clause two."}), 0600); err != nil {
		t.Fatal(err)
	}
	e := NewExtractor()
	blocks, err := e.ExtractBlocks(path)
	if err != nil {
		t.Fatalf("ExtractBlocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("blocks: got %d, want 2", len(blocks))
	}
}

func TestExtractBlocks_missingFile(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBlocks(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

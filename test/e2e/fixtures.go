package e2e

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDOCXFile renders paragraphs into a minimal DOCX file at path. Each
// paragraph becomes one <w:p> element, matching how the extractor reads one
// block per paragraph.
func WriteDOCXFile(path string, paragraphs []string) error {
	var body bytes.Buffer
	for _, p := range paragraphs {
		var escaped bytes.Buffer
		if err := xml.EscapeText(&escaped, []byte(p)); err != nil {
			return fmt.Errorf("escape paragraph: %w", err)
		}
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", escaped.String())
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`
	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypes},
		{"word/document.xml", doc},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			return fmt.Errorf("write zip entry %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteCorpus materializes every corpus document under dir.
func WriteCorpus(dir string, corpus *Corpus) error {
	for _, doc := range corpus.Documents {
		if err := WriteDOCXFile(filepath.Join(dir, doc.Name), doc.Clauses); err != nil {
			return fmt.Errorf("write %s: %w", doc.Name, err)
		}
	}
	return nil
}

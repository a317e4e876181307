// Package ingest loads the policy corpus and populates the clause index.
package ingest

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/coverwise/claimlens/internal/extract"
)

// LoadedFile is one corpus file with its extracted text blocks.
type LoadedFile struct {
	Path   string
	Blocks []string
}

// Loader scans a directory for policy documents and extracts their text.
type Loader struct {
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewLoader returns a loader using the given extractor. logger may be nil.
func NewLoader(extractor *extract.Extractor, logger *zap.Logger) *Loader {
	return &Loader{extractor: extractor, logger: logger}
}

// Load scans dir (non-recursively) for *.pdf and *.docx files and extracts
// their text blocks, in sorted path order. A missing or empty directory means
// "no documents" and returns an empty slice, not an error. Extraction errors
// propagate unhandled.
func (l *Loader) Load(dir string) ([]LoadedFile, error) {
	var paths []string
	for _, pattern := range []string{"*.pdf", "*.docx"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan documents: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	files := make([]LoadedFile, 0, len(paths))
	for _, path := range paths {
		if l.logger != nil {
			l.logger.Debug("loading document", zap.String("path", path))
		}
		blocks, err := l.extractor.ExtractBlocks(path)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		files = append(files, LoadedFile{Path: path, Blocks: blocks})
	}
	return files, nil
}

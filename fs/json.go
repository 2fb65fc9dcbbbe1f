package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
)

// Ensure JSONFile implements the output interfaces at compile time.
var (
	_ sitesearch.CorpusWriter   = (*JSONFile)(nil)
	_ sitesearch.MetadataWriter = (*JSONFile)(nil)
)

// JSONFile writes a JSON artifact, replacing any prior content.
// Data is written to path.tmp and renamed over path, so readers never see a
// partial file. A destination already holding identical content is left
// untouched.
type JSONFile struct {
	path string
}

// NewJSONFile creates a new JSONFile writing to path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the destination path.
func (f *JSONFile) Path() string {
	return f.path
}

// WriteCorpus writes records as a JSON array. No records produce "[]".
func (f *JSONFile) WriteCorpus(ctx context.Context, records []*sitesearch.Record) error {
	if records == nil {
		records = []*sitesearch.Record{}
	}
	return f.write(ctx, records)
}

// WriteMetadata writes page metadata as a JSON object keyed by URL.
func (f *JSONFile) WriteMetadata(ctx context.Context, metadata map[string]sitesearch.PageMetadata) error {
	if metadata == nil {
		metadata = map[string]sitesearch.PageMetadata{}
	}
	return f.write(ctx, metadata)
}

func (f *JSONFile) tempPath() string {
	return f.path + ".tmp"
}

func (f *JSONFile) write(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if unchanged(f.path, data) {
		return nil
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(f.tempPath(), data, 0644); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(f.tempPath(), f.path); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}

	return nil
}

// unchanged reports whether the file at path already holds data.
func unchanged(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil || len(existing) != len(data) {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64(data)
}

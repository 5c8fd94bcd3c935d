// Package cache persists OCR results in a single JSON file so restarts do
// not redo recognition. Entries are keyed by absolute image path and valid
// only while the stored mtime matches the file on disk.
package cache

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/riandy/ocrhost/internal/ocr"
)

type entry struct {
	Mtime    int64      `json:"mtime"`
	Spans    []ocr.Span `json:"ocr"`
	CachedAt int64      `json:"cached_at"`
}

type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Get returns the cached spans for key when the stored mtime (unix nanos)
// still matches.
func (f *File) Get(key string, mtime int64) ([]ocr.Span, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.load()[key]
	if !ok || e.Mtime != mtime {
		return nil, false
	}
	return e.Spans, true
}

// Put records spans for key at mtime, rewriting the whole file.
func (f *File) Put(key string, mtime int64, spans []ocr.Span) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.load()
	m[key] = entry{Mtime: mtime, Spans: spans, CachedAt: time.Now().Unix()}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0644)
}

// load tolerates a missing or corrupt cache file; worst case OCR reruns.
func (f *File) load() map[string]entry {
	m := map[string]entry{}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]entry{}
	}
	return m
}

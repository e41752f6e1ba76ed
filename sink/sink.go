// Package sink receives serialized documents at the end of a pipeline run.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/fileutil"
)

// Sink accepts a serialized document. name is the requested output name
// without extension; the sink decides the final destination.
type Sink interface {
	Write(ctx context.Context, name string, content []byte, kind document.Kind) error
}

// FileName joins name and the extension for kind, leaving names that already
// carry the right extension untouched.
func FileName(name string, kind document.Kind) string {
	ext := fileutil.Extension(string(kind))
	if strings.HasSuffix(name, ext) || (kind == document.KindYAML && strings.HasSuffix(name, ".yml")) {
		return name
	}
	return name + ext
}

// FileSink writes documents below Dir.
type FileSink struct {
	Dir string
	// Perm is the file mode; zero means owner read/write.
	Perm os.FileMode
}

// NewFileSink returns a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Path returns the file a Write for name and kind would produce.
func (s *FileSink) Path(name string, kind document.Kind) string {
	return filepath.Join(s.Dir, FileName(name, kind))
}

// Write implements Sink. Names must stay inside Dir.
func (s *FileSink) Write(ctx context.Context, name string, content []byte, kind document.Kind) error {
	fail := func(err error) error {
		return &aserrors.SinkError{Destination: name, Kind: string(kind), Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if name == "" || !filepath.IsLocal(name) {
		return fail(aserrors.ErrInvalidDestination)
	}
	path := s.Path(name, kind)
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirMode); err != nil {
		return fail(err)
	}
	perm := s.Perm
	if perm == 0 {
		perm = fileutil.OwnerReadWrite
	}
	if err := os.WriteFile(path, content, perm); err != nil {
		return fail(err)
	}
	return nil
}

// MemorySink keeps written documents in memory. It is safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{entries: make(map[string][]byte)}
}

// Write implements Sink.
func (s *MemorySink) Write(ctx context.Context, name string, content []byte, kind document.Kind) error {
	if err := ctx.Err(); err != nil {
		return &aserrors.SinkError{Destination: name, Kind: string(kind), Cause: err}
	}
	key := FileName(name, kind)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = slices.Clone(content)
	return nil
}

// Get returns the content written under a file name such as "asyncapi.yaml".
func (s *MemorySink) Get(file string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.entries[file]
	return b, ok
}

// Files lists written file names in first-write order.
func (s *MemorySink) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.order)
}

package fixture

import (
	"fmt"
	"sync"
)

// WriterRegistry stores writers by format.
type WriterRegistry struct {
	mu      sync.RWMutex
	writers map[Format]Writer
}

// NewWriterRegistry creates an empty registry.
func NewWriterRegistry() *WriterRegistry {
	return &WriterRegistry{writers: make(map[Format]Writer)}
}

// Register adds a writer for a format.
func (r *WriterRegistry) Register(format Format, writer Writer) error {
	if format == "" {
		return NewError(KindValidation, "writer format is required", nil)
	}
	if writer == nil {
		return NewError(KindValidation, "writer is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.writers[format]; exists {
		return NewError(KindValidation, fmt.Sprintf("writer for %q already registered", format), nil)
	}
	r.writers[format] = writer
	return nil
}

// Resolve returns the writer for the format.
func (r *WriterRegistry) Resolve(format Format) (Writer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	writer, ok := r.writers[format]
	return writer, ok
}

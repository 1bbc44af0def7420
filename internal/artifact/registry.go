// Package artifact resolves on-chain artifact identifiers to files in the
// external model store. Resolution is pure path construction; only loading
// can fail, and the store itself is never mutated from here.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExt is the artifact file extension used when none is configured.
const DefaultExt = ".pt"

// Registry maps artifact identifiers to storage locations under a fixed root.
// It is immutable after construction, so concurrent use needs no coordination.
type Registry struct {
	root string
	ext  string
}

// NewRegistry constructs a registry over the given storage root. An empty ext
// falls back to DefaultExt; a missing leading dot is tolerated.
func NewRegistry(root, ext string) *Registry {
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Registry{root: root, ext: ext}
}

// Root returns the configured storage root.
func (r *Registry) Root() string { return r.root }

// Normalize lower-cases an artifact id and strips an optional 0x prefix.
// Any string surviving this is a legal (possibly nonexistent) identifier.
func Normalize(aid string) string {
	return strings.TrimPrefix(strings.ToLower(aid), "0x")
}

// Resolve derives the storage location for an artifact id. It always succeeds
// syntactically and performs no existence check; Load is the fallible step.
func (r *Registry) Resolve(aid string) string {
	return filepath.Join(r.root, Normalize(aid)+r.ext)
}

// Load attempts to open and sanity-check the artifact at path. Missing,
// unreadable, and zero-byte files all fail; a real detector replaces this
// check with actual weight parsing behind the same error contract.
func (r *Registry) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat artifact: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("artifact %s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("artifact %s is empty", path)
	}

	// Touch the first bytes so permission and I/O errors surface here rather
	// than in a later, real parse step.
	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		return fmt.Errorf("read artifact: %w", err)
	}
	return nil
}

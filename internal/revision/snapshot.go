package revision

import (
	"context"
	"errors"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound reports that a path does not exist in a snapshot. Not
// fatal: a model file may be added or deleted by the change under
// analysis.
var ErrNotFound = errors.New("file not found in snapshot")

// Snapshot is one revision's view of the source tree. The analysis
// core only ever sees resolved text content through this boundary.
type Snapshot interface {
	// Name identifies the snapshot in diagnostics (a rev or a label).
	Name() string
	// Files lists paths in the snapshot matching any of the globs,
	// sorted for deterministic processing.
	Files(ctx context.Context, globs []string) ([]string, error)
	// Read returns the raw content of path, or ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)
}

// Mem is an in-memory snapshot keyed by path, used by tests and
// library callers that already hold file content.
type Mem struct {
	Label string
	Data  map[string][]byte
}

func (m *Mem) Name() string { return m.Label }

func (m *Mem) Files(_ context.Context, globs []string) ([]string, error) {
	var paths []string
	for p := range m.Data {
		if matchAny(globs, p) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *Mem) Read(_ context.Context, path string) ([]byte, error) {
	data, ok := m.Data[path]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func matchAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}

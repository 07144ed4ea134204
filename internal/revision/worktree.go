package revision

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// WorkTree is a Snapshot over the working directory, so uncommitted
// changes can be checked before a PR is pushed.
type WorkTree struct {
	Root    string
	ignored []string
}

// NewWorkTree creates a snapshot over the tree rooted at root.
func NewWorkTree(root string) *WorkTree {
	return &WorkTree{
		Root:    root,
		ignored: []string{".git", "vendor", "node_modules", "__pycache__", ".venv", "testdata"},
	}
}

func (w *WorkTree) Name() string { return "worktree" }

// Files walks the tree and returns paths (relative to Root) matching
// the globs, skipping the usual non-source directories.
func (w *WorkTree) Files(_ context.Context, globs []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range w.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		rel, err := filepath.Rel(w.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchAny(globs, rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *WorkTree) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(w.Root, path))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

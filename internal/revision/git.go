package revision

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Git is a Snapshot backed by a git revision. It shells out to git the
// same way the rest of the toolchain does; the repository is never
// checked out.
type Git struct {
	Dir string
	Rev string
}

// NewGit creates a snapshot for a revision of the repository at dir.
func NewGit(dir, rev string) *Git {
	return &Git{Dir: dir, Rev: rev}
}

func (g *Git) Name() string { return g.Rev }

// Files lists the tree at the revision via `git ls-tree` and filters
// by the configured globs.
func (g *Git) Files(ctx context.Context, globs []string) ([]string, error) {
	out, err := g.run(ctx, "ls-tree", "-r", "--name-only", g.Rev)
	if err != nil {
		return nil, fmt.Errorf("git ls-tree %s: %w", g.Rev, err)
	}
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && matchAny(globs, line) {
			paths = append(paths, line)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Read returns file content at the revision via `git show rev:path`.
func (g *Git) Read(ctx context.Context, path string) ([]byte, error) {
	out, err := g.run(ctx, "show", g.Rev+":"+path)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "does not exist") ||
			strings.Contains(msg, "exists on disk, but not in") ||
			strings.Contains(msg, "bad file") {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("git show %s:%s: %w", g.Rev, path, err)
	}
	return out, nil
}

func (g *Git) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return out, nil
}

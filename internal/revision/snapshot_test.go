package revision

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMem(t *testing.T) {
	snap := &Mem{
		Label: "base",
		Data: map[string][]byte{
			"app/models.py":      []byte("class User: ..."),
			"app/sub/models.py":  []byte("class Order: ..."),
			"app/views.py":       []byte("def index(): ..."),
			"docs/models.py.bak": []byte(""),
		},
	}

	t.Run("glob matching", func(t *testing.T) {
		paths, err := snap.Files(context.Background(), []string{"**/models.py"})
		require.NoError(t, err)
		assert.Equal(t, []string{"app/models.py", "app/sub/models.py"}, paths)
	})

	t.Run("read", func(t *testing.T) {
		data, err := snap.Read(context.Background(), "app/views.py")
		require.NoError(t, err)
		assert.Equal(t, "def index(): ...", string(data))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := snap.Read(context.Background(), "nope.py")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWorkTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "__pycache__"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "models.py"), []byte("class User: ..."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "__pycache__", "models.py"), []byte("stale"), 0o644))

	snap := NewWorkTree(root)
	assert.Equal(t, "worktree", snap.Name())

	paths, err := snap.Files(context.Background(), []string{"**/models.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"app/models.py"}, paths)

	data, err := snap.Read(context.Background(), "app/models.py")
	require.NoError(t, err)
	assert.Equal(t, "class User: ...", string(data))

	_, err = snap.Read(context.Background(), "app/gone.py")
	assert.ErrorIs(t, err, ErrNotFound)
}

func initGitRepo(t *testing.T, dir string) {
	t.Helper()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	run("add", ".")
	run("commit", "-q", "-m", "initial")
}

func TestGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "models.py"), []byte("class User: ..."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme"), 0o644))
	initGitRepo(t, dir)

	snap := NewGit(dir, "HEAD")
	assert.Equal(t, "HEAD", snap.Name())

	paths, err := snap.Files(context.Background(), []string{"**/models.py"})
	require.NoError(t, err)
	assert.Equal(t, []string{"app/models.py"}, paths)

	data, err := snap.Read(context.Background(), "app/models.py")
	require.NoError(t, err)
	assert.Equal(t, "class User: ...", string(data))

	_, err = snap.Read(context.Background(), "app/gone.py")
	assert.ErrorIs(t, err, ErrNotFound)
}

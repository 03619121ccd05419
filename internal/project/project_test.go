package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "js", "a_backup.json"))
	touch(t, filepath.Join(root, "js", "my-patch.json"))
	touch(t, filepath.Join(root, "js", "zz.json"))
	touch(t, filepath.Join(root, "js", "ops.js"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "js", "dir.json"), 0o755))

	layout, err := Locate(root, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "js", "my-patch.json"), layout.GraphPath)
	assert.Equal(t, filepath.Join(root, "index.html"), layout.HTMLPath)
	assert.Equal(t, filepath.Join(root, "index_bck.html"), layout.BackupPath)
	assert.Equal(t, filepath.Join(root, "js", "ops.js"), layout.RegistryPath)
	assert.Equal(t, filepath.Join(root, "style", "style.css"), layout.CSSPath)
	assert.Equal(t, "style/style.css", layout.CSSHref)
}

func TestLocate_NoGraph(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "js", "patch_backup.json"))
	touch(t, filepath.Join(root, "js", "ops.js"))

	_, err := Locate(root, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoGraph)
}

func TestLocate_MissingScriptDir(t *testing.T) {
	_, err := Locate(t.TempDir(), DefaultOptions())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoGraph)
	assert.True(t, errors.HasCategory(err, errors.CategoryMissingInput))
}

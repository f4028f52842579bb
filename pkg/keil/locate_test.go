package keil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<Project/>"), 0644))
	}
}

func TestLocate_Single(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Proj.uvprojx", "Proj.uvoptx", "Proj.uvguix.user")

	loc, err := Locate(dir, "*.uvprojx", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Proj.uvprojx"), loc.Path)
	assert.False(t, loc.Ambiguous())
}

func TestLocate_MultiplePicksLexicographicFirst(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zeta.uvprojx", "Alpha.uvprojx", "beta.uvprojx")

	loc, err := Locate(dir, "*.uvprojx", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, loc.Ambiguous())
	assert.Equal(t, filepath.Join(dir, "Alpha.uvprojx"), loc.Path)
	assert.Equal(t, []string{
		filepath.Join(dir, "Alpha.uvprojx"),
		filepath.Join(dir, "beta.uvprojx"),
		filepath.Join(dir, "zeta.uvprojx"),
	}, loc.Candidates)
}

func TestLocate_NotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Proj.uvproj")

	_, err := Locate(dir, "*.uvprojx", zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Locate(filepath.Join(dir, "MDK-ARM"), "*.uvprojx", zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocate_BadPattern(t *testing.T) {
	_, err := Locate(t.TempDir(), "[", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLocate_MetacharactersInDirectory(t *testing.T) {
	for _, name := range []string{"fw[v2]", "[x]", "a[b"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), name, "MDK-ARM")
			require.NoError(t, os.MkdirAll(dir, 0755))
			touch(t, dir, "Proj.uvprojx")

			loc, err := Locate(dir, "*.uvprojx", zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "Proj.uvprojx"), loc.Path)
		})
	}
}

func TestLocate_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Backup.uvprojx"), 0755))
	touch(t, dir, "Proj.uvprojx")

	loc, err := Locate(dir, "*.uvprojx", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, loc.Ambiguous())
	assert.Equal(t, filepath.Join(dir, "Proj.uvprojx"), loc.Path)
}

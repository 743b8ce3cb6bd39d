package romload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nkato/goboy/internal/romerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveReturnsGivenPathUnchanged(t *testing.T) {
	path, err := Resolve("game.gb", true)
	require.NoError(t, err)
	assert.Equal(t, "game.gb", path)
}

func TestResolveErrorsWhenHeadlessWithNoPath(t *testing.T) {
	_, err := Resolve("", true)
	assert.ErrorIs(t, err, romerr.ErrUnreadable)
}

func TestLoadPlainImagePassesBytesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	want := make([]byte, 0x200)
	want[0] = 0xAB
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.gb"))
	assert.ErrorIs(t, err, romerr.ErrUnreadable)
}

func TestLoadEmptyFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.gb")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, romerr.ErrEmpty)
}

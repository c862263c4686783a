package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPlainROMPassesThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gb")
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	assert.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.gb"))
	assert.Error(t, err)
}

func TestLoadMalformedSevenZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.7z")
	assert.NoError(t, os.WriteFile(path, []byte("not a real archive"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

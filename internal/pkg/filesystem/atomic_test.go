package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "kb.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":"1"}`), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte(`{"b":"2"}`), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"2"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestExpandPath(t *testing.T) {
	home := UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".aiagent"), ExpandPath("~/.aiagent"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/x", ExpandPath("/tmp//x"))
	assert.Equal(t, "", ExpandPath(""))
}

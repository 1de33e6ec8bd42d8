package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "knowledge_base.json"))
	require.NoError(t, err)
	return s
}

func TestStoreThenSearchIgnoresCase(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("Q", "A"))

	got, ok := s.Search("q")
	require.True(t, ok)
	assert.Equal(t, "A", got)
}

func TestSearchSymmetricContainment(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("Hello World", "greeting"))

	got, ok := s.Search("hello")
	require.True(t, ok, "key contains query")
	assert.Equal(t, "greeting", got)

	got, ok = s.Search("please say HELLO WORLD to everyone")
	require.True(t, ok, "query contains key")
	assert.Equal(t, "greeting", got)

	_, ok = s.Search("goodbye")
	assert.False(t, ok)
}

func TestSearchPrefersLongestThenLexicographicKey(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("loop", "short"))
	require.NoError(t, s.Store("for loop", "long"))
	require.NoError(t, s.Store("bb", "bb"))
	require.NoError(t, s.Store("aa", "aa"))

	got, _ := s.Search("write a for loop")
	assert.Equal(t, "long", got)

	got, _ = s.Search("aa bb")
	assert.Equal(t, "aa", got)
}

func TestBlankQueryAndKey(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("x", "y"))

	_, ok := s.Search("   ")
	assert.False(t, ok)
	assert.ErrorIs(t, s.Store("  ", "z"), ErrEmptyKey)
	assert.Equal(t, 1, s.Len())
}

func TestStoreIsIdempotentAndSurvivesReload(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("q", "first"))
	require.NoError(t, s.Store("q", "second"))
	require.NoError(t, s.Store("q", "second"))
	assert.Equal(t, 1, s.Len())

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), reloaded.Entries())

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var onDisk map[string]string
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, map[string]string{"q": "second"}, onDisk)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Zero(t, s.Len())
	_, ok := s.Search("anything")
	assert.False(t, ok)
}

func TestCorruptFileFailsLoadWithoutOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	require.Error(t, err)

	s := NewFileStore(path)
	require.Error(t, s.Load())
	assert.Zero(t, s.Len())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestLoadDropsBlankKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"": "anything", "  ": "spaces", "hello": "world"}`), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Search("unrelated question")
	assert.False(t, ok)
	got, ok := s.Search("hello")
	require.True(t, ok)
	assert.Equal(t, "world", got)
}

func TestEntriesSortedAndClear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Store("b", "2"))
	require.NoError(t, s.Store("a", "1"))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Query)

	require.NoError(t, s.Clear())
	assert.Zero(t, s.Len())
	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Zero(t, reloaded.Len())
}

func TestConcurrentStoreAndSearch(t *testing.T) {
	s := newStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("query-%02d", i)
			assert.NoError(t, s.Store(key, "resp"))
			_, ok := s.Search(key)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, 16, reloaded.Len())
}

func TestCodeTemplates(t *testing.T) {
	tpl := CodeTemplates()
	assert.Equal(t, `System.out.println("Hello, World!");`, tpl["hello world"])
	assert.Contains(t, tpl["for loop"], "for (int i = 0; i < n; i++)")
	assert.Contains(t, tpl["if statement"], "if (condition)")
}

package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/aiagent-go/assets"
)

func TestEmbeddedRulesMatchBuiltins(t *testing.T) {
	var doc RulesFile
	require.NoError(t, yaml.Unmarshal(assets.DefaultSafetyYAML, &doc))
	assert.Equal(t, DefaultDenylist(), doc.Rules.Denylist)
}

func TestWriteDefaultRulesDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "safety.yaml")

	written, err := WriteDefaultRules(path)
	require.NoError(t, err)
	assert.True(t, written)

	c, err := NewClassifier(path)
	require.NoError(t, err)
	assert.Len(t, c.Rules(), len(DefaultDenylist()))

	require.NoError(t, os.WriteFile(path, []byte("rules:\n  denylist:\n    - token: banana\n"), 0o644))
	written, err = WriteDefaultRules(path)
	require.NoError(t, err)
	assert.False(t, written)

	require.NoError(t, c.Reload())
	assert.False(t, c.IsSafe("BANANA split"))
	assert.True(t, c.IsSafe("System.exit(0)"))
}

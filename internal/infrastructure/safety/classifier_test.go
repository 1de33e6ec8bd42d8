package safety

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierRejectsDenylistedTokensInAnyCase(t *testing.T) {
	c := NewDefaultClassifier()
	for _, rule := range DefaultDenylist() {
		for _, variant := range []string{rule.Token, strings.ToUpper(rule.Token), strings.ToLower(rule.Token)} {
			src := "int x = 1;\n" + variant + "\n"
			assert.False(t, c.IsSafe(src), "expected %q to be rejected", variant)
		}
	}
}

func TestClassifierAllowsPlainCode(t *testing.T) {
	c := NewDefaultClassifier()
	assert.True(t, c.IsSafe(`System.out.println("Hello")`))
	assert.True(t, c.IsSafe(`print('Hi')`))
	assert.True(t, c.IsSafe(`console.log(1 + 2)`))
}

func TestClassifierOverBlocksStringLiterals(t *testing.T) {
	c := NewDefaultClassifier()
	verdict := c.Assess(`print("never call System.exit here")`)
	assert.False(t, verdict.Safe)
	assert.Equal(t, "System.exit", verdict.MatchedToken)
	assert.Equal(t, "Process exit", verdict.Reason)
}

func TestClassifierLoadsRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`rules:
  denylist:
    - token: "launchMissiles"
      message: "Not today"
`), 0o644))

	c, err := NewClassifier(path)
	require.NoError(t, err)
	assert.Len(t, c.Rules(), 1)
	assert.False(t, c.IsSafe("LAUNCHMISSILES()"))
	assert.True(t, c.IsSafe("System.exit(0)"), "file rules replace the defaults")
}

func TestClassifierMissingFileFallsBackToDefaults(t *testing.T) {
	c, err := NewClassifier(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, len(DefaultDenylist()), len(c.Rules()))
}

func TestClassifierReloadKeepsRulesOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  denylist:\n    - token: foo\n"), 0o644))
	c, err := NewClassifier(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("rules: [unterminated"), 0o644))
	assert.Error(t, c.Reload())
	assert.False(t, c.IsSafe("foo"))
}

func TestClassifierInvalidFileFailsConstruction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: ["), 0o644))
	_, err := NewClassifier(path)
	assert.Error(t, err)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aiagent-go/internal/domain"
)

func newTestRoot(t *testing.T) (run func(stdin string, args ...string) (string, error)) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "storage:\n  data_dir: " + dir + "\n  history: file\nsafety:\n  watch: false\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	root, container, err := NewRootCmd(context.Background(), Options{ConfigPath: cfgPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = container.Close(ctx)
	})

	return func(stdin string, args ...string) (string, error) {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetIn(strings.NewReader(stdin))
		root.SetArgs(args)
		err := root.ExecuteContext(context.Background())
		return out.String(), err
	}
}

func TestRootForwardsArgsToQuery(t *testing.T) {
	run := newTestRoot(t)

	out, err := run("", "write", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "public class HelloWorld")

	out, err = run("", "knowledge", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "write hello world")
}

func TestExecCommandReadsStdinAndFlags(t *testing.T) {
	run := newTestRoot(t)

	out, err := run("1 + 1", "exec", "-l", "js")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 2")

	out, err = run("", "exec", "-l", "python", "-c", "print('hi')")
	require.NoError(t, err)
	assert.Contains(t, out, "hi")

	_, err = run("", "exec", "-l", "python", "-c", "import os\nos.system('ls')")
	assert.ErrorIs(t, err, errExecutionFailed)
}

func TestExecCommandJSON(t *testing.T) {
	run := newTestRoot(t)

	out, err := run("", "exec", "--json", "-l", "rust", "-c", "fn main() {}")
	require.NoError(t, err)

	var res domain.ExecutionResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Succeeded)
	assert.Equal(t, "Unsupported language: rust", res.Output)
	assert.Equal(t, domain.FailureUnsupportedLanguage, res.Failure)
}

func TestReadSourceRejectsBothInputs(t *testing.T) {
	_, err := readSource(strings.NewReader(""), "x", "y")
	assert.Error(t, err)
}

func TestIsTerminalFalseForBuffers(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.Stop()
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	assert.Contains(t, buf.String(), "working")
}

func TestParseGlobalFlags(t *testing.T) {
	opts := ParseGlobalFlags([]string{"exec", "-v", "--config", "/tmp/a.yaml", "-c", "1"}, Options{})
	assert.True(t, opts.Verbose)
	assert.Equal(t, "/tmp/a.yaml", opts.ConfigPath)

	opts = ParseGlobalFlags([]string{"--config=/etc/b.yaml", "--", "-v"}, Options{})
	assert.False(t, opts.Verbose)
	assert.Equal(t, "/etc/b.yaml", opts.ConfigPath)

	opts = ParseGlobalFlags(nil, Options{Verbose: true})
	assert.True(t, opts.Verbose)
}

func TestRootAcceptsGlobalFlags(t *testing.T) {
	run := newTestRoot(t)

	out, err := run("", "-v", "exec", "-l", "js", "-c", "2 * 3")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 6")
}

package safety

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aiagent-go/internal/pkg/logger"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safety.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  denylist:\n    - token: alpha\n"), 0o644))
	c, err := NewClassifier(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Watch(ctx, logger.NewNop()) }()

	// give the watcher a moment to register before writing
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  denylist:\n    - token: beta\n"), 0o644))

	assert.Eventually(t, func() bool {
		return !c.IsSafe("beta") && c.IsSafe("alpha")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-errCh)
}

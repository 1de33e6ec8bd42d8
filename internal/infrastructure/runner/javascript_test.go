package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aiagent-go/internal/domain"
)

func TestJavaScriptCapturesConsoleAndResult(t *testing.T) {
	s := NewJavaScriptStrategy()

	res, err := s.Run(context.Background(), `console.log("Hello", 42); 1 + 2`)
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, "Hello 42\n\nResult: 3", res.Output)
	assert.Equal(t, domain.ModeInterpreted, res.Mode)
}

func TestJavaScriptWithoutOutputReportsUndefined(t *testing.T) {
	res, err := NewJavaScriptStrategy().Run(context.Background(), `var x = 1;`)
	require.NoError(t, err)
	assert.Equal(t, "Result: undefined", res.Output)
}

func TestJavaScriptEmptyLogAppendsNothing(t *testing.T) {
	res, err := NewJavaScriptStrategy().Run(context.Background(), `console.log(); "done"`)
	require.NoError(t, err)
	assert.Equal(t, "Result: done", res.Output)
}

func TestJavaScriptExceptionIsFailedResult(t *testing.T) {
	res, err := NewJavaScriptStrategy().Run(context.Background(), `throw new Error("bad input")`)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Output, "JavaScript error: ")
	assert.Contains(t, res.Output, "bad input")
	assert.Equal(t, domain.FailureScriptError, res.Failure)
}

func TestJavaScriptSyntaxErrorIsFailedResult(t *testing.T) {
	res, err := NewJavaScriptStrategy().Run(context.Background(), `function (`)
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Output, "JavaScript error: ")
}

func TestJavaScriptCallsAreIsolated(t *testing.T) {
	s := NewJavaScriptStrategy()
	_, err := s.Run(context.Background(), `var leaked = "secret";`)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), `typeof leaked`)
	require.NoError(t, err)
	assert.Equal(t, "Result: undefined", res.Output)
}

func TestJavaScriptInterruptedByContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewJavaScriptStrategy().Run(ctx, `while (true) {}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

const undefinedResult = "undefined"

// JavaScriptStrategy evaluates source in a fresh goja runtime per call.
type JavaScriptStrategy struct{}

// NewJavaScriptStrategy builds the strategy.
func NewJavaScriptStrategy() *JavaScriptStrategy {
	return &JavaScriptStrategy{}
}

// Language implements ports.ExecutionStrategy.
func (s *JavaScriptStrategy) Language() domain.Language {
	return domain.LanguageJavaScript
}

// Run implements ports.ExecutionStrategy. Script exceptions produce a failed
// result; interruption by ctx is returned as an error.
func (s *JavaScriptStrategy) Run(ctx context.Context, source string) (domain.ExecutionResult, error) {
	vm := goja.New()
	var captured strings.Builder
	if err := installConsole(vm, &captured); err != nil {
		return domain.ExecutionResult{}, fmt.Errorf("install console: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-stop:
		}
	}()

	value, err := vm.RunString(source)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return domain.ExecutionResult{}, fmt.Errorf("script interrupted: %w", ctx.Err())
		}
		res := domain.FailedResult(domain.FailureScriptError, "JavaScript error: "+err.Error(), err.Error())
		res.Mode = domain.ModeInterpreted
		return res, nil
	}

	res := domain.NewResult(true, withResult(captured.String(), stringify(value)))
	res.Mode = domain.ModeInterpreted
	return res, nil
}

func installConsole(vm *goja.Runtime, out *strings.Builder) error {
	console := vm.NewObject()
	err := console.Set("log", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		out.WriteString(strings.Join(parts, " "))
		out.WriteByte('\n')
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	return vm.Set("console", console)
}

func stringify(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return undefinedResult
	}
	return v.String()
}

// withResult appends the evaluation value to captured console output.
func withResult(captured, result string) string {
	if captured == "" {
		return "Result: " + result
	}
	return captured + "\nResult: " + result
}

var _ ports.ExecutionStrategy = (*JavaScriptStrategy)(nil)

// Package runner holds the execution strategies and the dispatcher that
// gates, routes and normalizes code execution requests.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// Dispatcher implements ports.CodeExecutor.
type Dispatcher struct {
	safety     ports.SafetyClassifier
	strategies map[domain.Language]ports.ExecutionStrategy
	learner    ports.LearningRecorder
	logger     ports.Logger
	timeout    time.Duration
}

// Options configures a Dispatcher. Learner is optional.
type Options struct {
	Safety     ports.SafetyClassifier
	Strategies []ports.ExecutionStrategy
	Learner    ports.LearningRecorder
	Logger     ports.Logger
	Timeout    time.Duration
}

// NewDispatcher validates dependencies and indexes strategies by language.
func NewDispatcher(opts Options) (*Dispatcher, error) {
	if opts.Safety == nil || opts.Logger == nil {
		return nil, errors.New("runner.Dispatcher dependencies not satisfied")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultExecutionTimeout
	}
	d := &Dispatcher{
		safety:     opts.Safety,
		strategies: make(map[domain.Language]ports.ExecutionStrategy, len(opts.Strategies)),
		learner:    opts.Learner,
		logger:     opts.Logger,
		timeout:    timeout,
	}
	for _, s := range opts.Strategies {
		d.strategies[s.Language()] = s
	}
	return d, nil
}

// Languages lists registered strategies.
func (d *Dispatcher) Languages() []domain.Language {
	out := make([]domain.Language, 0, len(d.strategies))
	for lang := range d.strategies {
		out = append(out, lang)
	}
	return out
}

// Execute implements ports.CodeExecutor. It never returns a fault: every
// failure is folded into a result with Succeeded=false.
func (d *Dispatcher) Execute(ctx context.Context, req domain.ExecutionRequest) domain.ExecutionResult {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	if verdict := d.safety.Assess(req.SourceText); !verdict.Safe {
		d.logger.Warn("code rejected by safety gate", map[string]interface{}{
			"request_id": id,
			"token":      verdict.MatchedToken,
			"language":   req.Language,
		})
		res := domain.FailedResult(domain.FailureSafetyRejected, domain.MsgUnsafeCode, verdict.Reason)
		res.Mode = domain.ModeRejected
		return finish(res, id, domain.Language(req.Language), start)
	}

	lang, known := domain.ParseLanguage(req.Language)
	strategy, registered := d.strategies[lang]
	if !known || !registered {
		res := domain.FailedResult(domain.FailureUnsupportedLanguage, domain.MsgUnsupportedLanguage+req.Language, "")
		res.Mode = domain.ModeRejected
		res = finish(res, id, lang, start)
		d.record(req.SourceText, lang, res)
		return res
	}

	res := finish(d.invoke(ctx, strategy, req.SourceText), id, lang, start)
	d.logger.Debug("code executed", map[string]interface{}{
		"request_id":  id,
		"language":    string(lang),
		"succeeded":   res.Succeeded,
		"failure":     string(res.Failure),
		"duration_ms": res.DurationMS,
	})
	d.record(req.SourceText, lang, res)
	return res
}

type outcome struct {
	res domain.ExecutionResult
	err error
}

// invoke runs the strategy on its own goroutine so a strategy that ignores
// ctx cannot hold the caller past the deadline.
func (d *Dispatcher) invoke(parent context.Context, strategy ports.ExecutionStrategy, source string) domain.ExecutionResult {
	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("strategy panic: %v", r)}
			}
		}()
		res, err := strategy.Run(ctx, source)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return d.fault(ctx, o.err)
		}
		return o.res
	case <-ctx.Done():
		return d.fault(ctx, ctx.Err())
	}
}

func (d *Dispatcher) fault(ctx context.Context, err error) domain.ExecutionResult {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg := fmt.Sprintf("execution timed out after %s", d.timeout)
		return domain.FailedResult(domain.FailureTimeout, domain.MsgExecutionError+msg, err.Error())
	}
	return domain.FailedResult(domain.FailureStrategyFault, domain.MsgExecutionError+err.Error(), err.Error())
}

// record feeds the learner without letting it affect the result.
func (d *Dispatcher) record(code string, lang domain.Language, res domain.ExecutionResult) {
	if d.learner == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("learning recorder panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
	}()
	d.learner.RecordExecution(code, lang, res)
}

func finish(res domain.ExecutionResult, id string, lang domain.Language, start time.Time) domain.ExecutionResult {
	res.RequestID = id
	res.Language = lang
	res.DurationMS = time.Since(start).Milliseconds()
	if res.TimestampMillis == 0 {
		res.TimestampMillis = time.Now().UnixMilli()
	}
	return res
}

var _ ports.CodeExecutor = (*Dispatcher)(nil)

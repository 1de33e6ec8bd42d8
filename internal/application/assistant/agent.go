package assistant

import (
	"context"
	"errors"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/workpool"
)

// Agent runs Service flows on a shared worker pool and hands back futures.
type Agent struct {
	service *Service
	pool    *workpool.Pool
}

// NewAgent starts a pool of workers in front of service.
func NewAgent(service *Service, workers, queue int) (*Agent, error) {
	if !service.ready() {
		return nil, errDependencies
	}
	if workers <= 0 {
		workers = domain.DefaultWorkers
	}
	return &Agent{service: service, pool: workpool.New(workers, queue)}, nil
}

// Service exposes the synchronous flows.
func (a *Agent) Service() *Service {
	return a.service
}

// Workers reports the pool size.
func (a *Agent) Workers() int {
	return a.pool.Workers()
}

// ProcessQuery schedules the query flow.
func (a *Agent) ProcessQuery(ctx context.Context, query string) *workpool.Future[string] {
	return workpool.Submit(a.pool, func() string {
		return a.service.ProcessQuery(ctx, query)
	})
}

// ExecuteCode schedules an execution. See AwaitExecution for folding pool
// errors into a result.
func (a *Agent) ExecuteCode(ctx context.Context, code, language string) *workpool.Future[domain.ExecutionResult] {
	return workpool.Submit(a.pool, func() domain.ExecutionResult {
		return a.service.ExecuteCode(ctx, code, language)
	})
}

// Shutdown stops intake and waits for in-flight tasks until ctx expires.
func (a *Agent) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return a.pool.Close(ctx)
}

// AwaitExecution waits for f and folds a pool error into a failed result.
func AwaitExecution(ctx context.Context, f *workpool.Future[domain.ExecutionResult]) domain.ExecutionResult {
	res, err := f.Wait(ctx)
	if err != nil {
		kind := domain.FailureStrategyFault
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.FailureTimeout
		}
		return domain.FailedResult(kind, domain.MsgExecutionError+err.Error(), err.Error())
	}
	return res
}

// AwaitQuery waits for f and folds a pool error into the query error text.
func AwaitQuery(ctx context.Context, f *workpool.Future[string]) string {
	res, err := f.Wait(ctx)
	if err != nil {
		return domain.MsgQueryError + err.Error()
	}
	return res
}

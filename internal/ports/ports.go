// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The assistant core depends only on these abstractions. Concrete adapters
// (file-backed knowledge, SQLite history, embedded interpreters, zap logging)
// live under internal/infrastructure and are wired in internal/app.
package ports

import (
	"context"

	"github.com/doeshing/aiagent-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.aiagent/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SafetyClassifier is the pre-execution gate for untrusted source text.
type SafetyClassifier interface {
	IsSafe(source string) bool
	Assess(source string) domain.SafetyVerdict
}

// ExecutionStrategy maps source text to captured output for one language.
// A returned error is a strategy fault; script-level failures are reported
// through a failed result with a nil error.
type ExecutionStrategy interface {
	Language() domain.Language
	Run(ctx context.Context, source string) (domain.ExecutionResult, error)
}

// CodeExecutor runs a request through the safety gate and a strategy.
type CodeExecutor interface {
	Execute(ctx context.Context, req domain.ExecutionRequest) domain.ExecutionResult
}

// KnowledgeStore maps prior queries to prior responses.
type KnowledgeStore interface {
	Search(query string) (string, bool)
	Store(query, response string) error
}

// KnowledgeRepository is the wider surface used by CLI and API listings.
type KnowledgeRepository interface {
	KnowledgeStore
	Entries() []domain.KnowledgeEntry
	Len() int
	Clear() error
	Path() string
}

// IntentClassifier buckets a query into an intent.
type IntentClassifier interface {
	Classify(query string) domain.Intent
}

// ResponseGenerator produces template text for a query.
type ResponseGenerator interface {
	Generate(query string, intent domain.Intent) string
	Enhance(base string, intent domain.Intent) string
}

// LearningRecorder records interaction and execution outcomes.
type LearningRecorder interface {
	RecordInteraction(query, response string)
	RecordExecution(code string, language domain.Language, result domain.ExecutionResult)
}

// LearningInspector exposes learner state for read-only reporting.
type LearningInspector interface {
	Snapshot() domain.LearningSnapshot
}

// HistoryStore appends history records.
type HistoryStore interface {
	Save(domain.HistoryRecord) error
}

// HistoryRepository extends HistoryStore with query and maintenance operations.
type HistoryRepository interface {
	HistoryStore
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

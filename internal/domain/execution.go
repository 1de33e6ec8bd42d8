package domain

import (
	"strings"
	"time"
)

// Language identifies an execution strategy.
type Language string

const (
	LanguageJava       Language = "java"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageGo         Language = "go"
)

// ParseLanguage normalizes a user supplied tag. Unknown tags are returned
// lowercased with ok=false so callers can echo them back.
func ParseLanguage(tag string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "java":
		return LanguageJava, true
	case "python":
		return LanguagePython, true
	case "javascript", "js":
		return LanguageJavaScript, true
	case "go", "golang":
		return LanguageGo, true
	default:
		return Language(strings.ToLower(tag)), false
	}
}

// ExecutionMode tells the caller what actually happened to the source.
type ExecutionMode string

const (
	ModeInterpreted    ExecutionMode = "interpreted"
	ModeStaticAnalysis ExecutionMode = "static-analysis"
	ModeRejected       ExecutionMode = "rejected"
)

// FailureKind classifies a failed execution.
type FailureKind string

const (
	FailureNone                FailureKind = ""
	FailureSafetyRejected      FailureKind = "safety_rejected"
	FailureUnsupportedLanguage FailureKind = "unsupported_language"
	FailureStrategyFault       FailureKind = "strategy_fault"
	FailureScriptError         FailureKind = "script_error"
	FailureTimeout             FailureKind = "timeout"
)

// Fixed user-visible messages.
const (
	MsgUnsafeCode          = "Code contains unsafe operations"
	MsgUnsupportedLanguage = "Unsupported language: "
	MsgExecutionError      = "Execution error: "
	MsgQueryError          = "Error processing query: "
)

// ExecutionRequest is created once per executeCode call.
type ExecutionRequest struct {
	ID         string
	SourceText string
	Language   string
}

// ExecutionResult is the normalized outcome of an execution request.
// Values are built once and never mutated afterwards.
type ExecutionResult struct {
	RequestID       string        `json:"request_id,omitempty"`
	Language        Language      `json:"language,omitempty"`
	Succeeded       bool          `json:"succeeded"`
	Output          string        `json:"output"`
	Error           string        `json:"error,omitempty"`
	Failure         FailureKind   `json:"failure,omitempty"`
	Mode            ExecutionMode `json:"mode,omitempty"`
	TimestampMillis int64         `json:"timestamp_millis"`
	DurationMS      int64         `json:"duration_ms"`
}

// NewResult stamps a result with the current time.
func NewResult(succeeded bool, output string) ExecutionResult {
	return ExecutionResult{
		Succeeded:       succeeded,
		Output:          output,
		TimestampMillis: time.Now().UnixMilli(),
	}
}

// FailedResult builds a semantically failed result.
func FailedResult(kind FailureKind, output, errText string) ExecutionResult {
	res := NewResult(false, output)
	res.Failure = kind
	res.Error = errText
	return res
}

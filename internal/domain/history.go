package domain

import "time"

// HistoryKind separates the two flows recorded in history.
type HistoryKind string

const (
	HistoryQuery     HistoryKind = "query"
	HistoryExecution HistoryKind = "execution"
)

// HistoryRecord captures one processed query or execution.
type HistoryRecord struct {
	ID            string      `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Kind          HistoryKind `json:"kind"`
	Input         string      `json:"input"`
	Output        string      `json:"output"`
	Intent        Intent      `json:"intent,omitempty"`
	Language      Language    `json:"language,omitempty"`
	Success       bool        `json:"success"`
	FromKnowledge bool        `json:"from_knowledge"`
	DurationMS    int64       `json:"duration_ms"`
}

// KnowledgeEntry is one stored query/response pair.
type KnowledgeEntry struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

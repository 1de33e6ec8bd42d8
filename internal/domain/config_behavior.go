package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// KnowledgePath resolves the knowledge file, relative names live under DataDir.
func (c *Config) KnowledgePath() string {
	name := c.Storage.KnowledgeFile
	if name == "" {
		name = KnowledgeFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Storage.DataDir, name)
}

// HistoryDBPath is the SQLite database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Storage.DataDir, HistoryDBFileName)
}

// HistoryJSONLPath is the append-only fallback location.
func (c *Config) HistoryJSONLPath() string {
	return filepath.Join(c.Storage.DataDir, HistoryJSONLFileName)
}

// HistoryBackend normalizes the configured backend, defaulting to sqlite.
func (c *Config) HistoryBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Storage.History)) {
	case "", HistorySQLite:
		return HistorySQLite
	case HistoryFile, "jsonl":
		return HistoryFile
	case HistoryNone, "off", "disabled":
		return HistoryNone
	default:
		return strings.ToLower(c.Storage.History)
	}
}

// ExecutionTimeout returns the per-request deadline, never zero.
func (c *Config) ExecutionTimeout() time.Duration {
	if c.Execution.Timeout <= 0 {
		return DefaultExecutionTimeout
	}
	return c.Execution.Timeout
}

// WorkerCount returns the pool size, never zero.
func (c *Config) WorkerCount() int {
	if c.Execution.Workers <= 0 {
		return DefaultWorkers
	}
	return c.Execution.Workers
}

// QueueCapacity returns the pending task buffer, never negative.
func (c *Config) QueueCapacity() int {
	if c.Execution.QueueSize < 0 {
		return 0
	}
	if c.Execution.QueueSize == 0 {
		return DefaultQueueSize
	}
	return c.Execution.QueueSize
}

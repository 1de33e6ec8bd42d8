package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// DataFilePermissions is the permission for knowledge and history files (rw-r--r--)
	DataFilePermissions = 0o644
)

// Execution constants
const (
	// DefaultExecutionTimeout bounds a single strategy invocation
	DefaultExecutionTimeout = 5 * time.Second
	// DefaultWorkers is the size of the shared worker pool
	DefaultWorkers = 4
	// DefaultQueueSize is how many tasks may wait for a free worker
	DefaultQueueSize = 64
	// DefaultShutdownGrace is how long Shutdown waits for in-flight tasks
	DefaultShutdownGrace = 5 * time.Second
)

// Learning constants
const (
	// LearningHistoryCapacity is the ring buffer size for recorded interactions
	LearningHistoryCapacity = 100
	// CodeSuccessIncrement is added to the code_success weight per successful run
	CodeSuccessIncrement = 0.01
	// MaxWeight caps every learned weight
	MaxWeight = 1.0
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Storage file names under the data directory
const (
	KnowledgeFileName    = "knowledge_base.json"
	HistoryDBFileName    = "history.db"
	HistoryJSONLFileName = "history.jsonl"
	SafetyRulesFileName  = "safety.yaml"
	ConfigFileName       = "config.yaml"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

package domain

import "time"

// Config mirrors ~/.aiagent/config.yaml. Environment variables named in the
// env tags override file values.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Storage             StorageSettings   `yaml:"storage"`
	Execution           ExecutionSettings `yaml:"execution"`
	Safety              SafetySettings    `yaml:"safety"`
	Server              ServerSettings    `yaml:"server"`
	Logging             LoggingSettings   `yaml:"logging"`
}

// StorageSettings locates persisted state.
type StorageSettings struct {
	DataDir       string `yaml:"data_dir" env:"AIAGENT_DATA_DIR"`
	KnowledgeFile string `yaml:"knowledge_file" env:"AIAGENT_KNOWLEDGE_FILE"`
	History       string `yaml:"history" env:"AIAGENT_HISTORY"`
}

// ExecutionSettings controls the dispatcher and worker pool.
type ExecutionSettings struct {
	Timeout       time.Duration `yaml:"timeout" env:"AIAGENT_EXEC_TIMEOUT"`
	Workers       int           `yaml:"workers" env:"AIAGENT_WORKERS"`
	QueueSize     int           `yaml:"queue_size" env:"AIAGENT_QUEUE_SIZE"`
	GoInterpreter bool          `yaml:"go_interpreter" env:"AIAGENT_GO_INTERPRETER"`
}

// SafetySettings points at the denylist rules.
type SafetySettings struct {
	RulesFile string `yaml:"rules_file" env:"AIAGENT_SAFETY_RULES"`
	Watch     bool   `yaml:"watch" env:"AIAGENT_SAFETY_WATCH"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `yaml:"addr" env:"AIAGENT_ADDR"`
}

// LoggingSettings configures the zap backend.
type LoggingSettings struct {
	Level  string `yaml:"level" env:"AIAGENT_LOG_LEVEL"`
	Format string `yaml:"format" env:"AIAGENT_LOG_FORMAT"`
}

// History backends.
const (
	HistorySQLite = "sqlite"
	HistoryFile   = "file"
	HistoryNone   = "none"
)

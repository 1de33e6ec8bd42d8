package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/aiagent-go/internal/domain"
)

// Validate ensures config structure is consistent. Every problem found is
// reported, joined into one error.
func Validate(cfg domain.Config) error {
	return errors.Join(
		validateStorage(cfg),
		validateExecution(cfg.Execution),
		validateSafety(cfg.Safety),
		validateServer(cfg.Server),
		validateLogging(cfg.Logging),
	)
}

func validateStorage(cfg domain.Config) error {
	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		return errors.New("storage.data_dir must be set")
	}
	switch cfg.HistoryBackend() {
	case domain.HistorySQLite, domain.HistoryFile, domain.HistoryNone:
		return nil
	default:
		return fmt.Errorf("storage.history must be sqlite|file|none, got %s", cfg.Storage.History)
	}
}

func validateExecution(exec domain.ExecutionSettings) error {
	var errs []error
	if exec.Timeout < 0 {
		errs = append(errs, fmt.Errorf("execution.timeout must be >= 0, got %s", exec.Timeout))
	}
	if exec.Workers < 0 || exec.Workers > 256 {
		errs = append(errs, fmt.Errorf("execution.workers must be between 0 and 256, got %d", exec.Workers))
	}
	if exec.QueueSize < 0 {
		errs = append(errs, fmt.Errorf("execution.queue_size must be >= 0, got %d", exec.QueueSize))
	}
	return errors.Join(errs...)
}

func validateSafety(sec domain.SafetySettings) error {
	if sec.Watch && sec.RulesFile == "" {
		return errors.New("safety.watch requires safety.rules_file")
	}
	return nil
}

func validateServer(srv domain.ServerSettings) error {
	if srv.Addr != "" && !strings.Contains(srv.Addr, ":") {
		return fmt.Errorf("server.addr must be host:port, got %s", srv.Addr)
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	var errs []error
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level))
	}
	switch strings.ToLower(l.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console|json, got %s", l.Format))
	}
	return errors.Join(errs...)
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/aiagent-go/assets"
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/filesystem"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// EnvConfigPath names the variable that overrides the config file location.
const EnvConfigPath = "AIAGENT_CONFIG"

// FileLoader loads YAML configuration from ~/.aiagent/config.yaml
// (overridable via AIAGENT_CONFIG) and overlays AIAGENT_* variables.
type FileLoader struct {
	overridePath string
	environ      func() []string
}

// NewFileLoader builds a new loader. An empty path uses the default lookup.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, environ: os.Environ}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, fmt.Errorf("create config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := writeDefault(path); err != nil {
			return domain.Config{}, err
		}
		data = assets.DefaultConfigYAML
	}

	cfg, err := embeddedConfig()
	if err != nil {
		return domain.Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: env.ToMap(l.environ())}); err != nil {
		return domain.Config{}, fmt.Errorf("apply environment overrides: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

// Path is the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := l.lookup(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".aiagent", domain.ConfigFileName)
}

func (l *FileLoader) lookup(key string) string {
	prefix := key + "="
	for _, kv := range l.environ() {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimPrefix(kv, prefix)
		}
	}
	return ""
}

func writeDefault(path string) error {
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// DefaultConfig is the embedded configuration with derived paths filled in.
func DefaultConfig() (domain.Config, error) {
	cfg, err := embeddedConfig()
	if err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func embeddedConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded config: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = filepath.Join(filesystem.UserHomeDir(), ".aiagent")
	}
	cfg.Storage.DataDir = filesystem.ExpandPath(cfg.Storage.DataDir)
	if cfg.Storage.KnowledgeFile == "" {
		cfg.Storage.KnowledgeFile = domain.KnowledgeFileName
	}
	if cfg.Storage.History == "" {
		cfg.Storage.History = domain.HistorySQLite
	}
	if cfg.Execution.Timeout == 0 {
		cfg.Execution.Timeout = domain.DefaultExecutionTimeout
	}
	if cfg.Execution.Workers == 0 {
		cfg.Execution.Workers = domain.DefaultWorkers
	}
	if cfg.Safety.RulesFile == "" {
		cfg.Safety.RulesFile = filepath.Join(cfg.Storage.DataDir, domain.SafetyRulesFileName)
	}
	cfg.Safety.RulesFile = filesystem.ExpandPath(cfg.Safety.RulesFile)
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

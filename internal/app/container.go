package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	appconfig "github.com/doeshing/aiagent-go/internal/application/config"
	"github.com/doeshing/aiagent-go/internal/application/assistant"
	"github.com/doeshing/aiagent-go/internal/application/doctor"
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/infrastructure/ai"
	"github.com/doeshing/aiagent-go/internal/infrastructure/config"
	"github.com/doeshing/aiagent-go/internal/infrastructure/history"
	"github.com/doeshing/aiagent-go/internal/infrastructure/httpapi"
	"github.com/doeshing/aiagent-go/internal/infrastructure/knowledge"
	"github.com/doeshing/aiagent-go/internal/infrastructure/learning"
	"github.com/doeshing/aiagent-go/internal/infrastructure/runner"
	"github.com/doeshing/aiagent-go/internal/infrastructure/safety"
	"github.com/doeshing/aiagent-go/internal/pkg/logger"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// Options controls container construction.
type Options struct {
	// ConfigPath overrides the config file lookup when set.
	ConfigPath string
	Verbose    bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         *logger.ZapLogger
	Safety         *safety.Classifier
	Knowledge      *knowledge.FileStore
	Learning       *learning.Engine
	HistoryStore   ports.HistoryRepository
	Strategies     []ports.ExecutionStrategy
	Dispatcher     *runner.Dispatcher
	Service        *assistant.Service
	Agent          *assistant.Agent
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgLoader.Path(), err)
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if written, err := safety.WriteDefaultRules(cfg.Safety.RulesFile); err != nil {
		log.Warn("could not seed safety rules", map[string]interface{}{"path": cfg.Safety.RulesFile, "error": err.Error()})
	} else if written {
		log.Debug("seeded safety rules", map[string]interface{}{"path": cfg.Safety.RulesFile})
	}
	classifier, err := safety.NewClassifier(cfg.Safety.RulesFile)
	if err != nil {
		log.Warn("safety rules unreadable, using built-in denylist", map[string]interface{}{"error": err.Error()})
		classifier = safety.NewDefaultClassifier()
	}

	kb := knowledge.NewFileStore(cfg.KnowledgePath())
	if err := kb.Load(); err != nil {
		log.Warn("knowledge base unreadable, starting empty", map[string]interface{}{"path": kb.Path(), "error": err.Error()})
	}

	engine := learning.NewEngine()
	historyStore := history.Open(cfg)
	if s, ok := historyStore.(*history.SQLiteStore); ok && s.Degraded() {
		log.Warn("sqlite history unavailable, falling back to jsonl", map[string]interface{}{"path": s.Path()})
	}

	strategies := []ports.ExecutionStrategy{
		runner.NewJavaStrategy(),
		runner.NewPythonStrategy(),
		runner.NewJavaScriptStrategy(),
	}
	if cfg.Execution.GoInterpreter {
		strategies = append(strategies, runner.NewGoStrategy())
	}
	dispatcher, err := runner.NewDispatcher(runner.Options{
		Safety:     classifier,
		Strategies: strategies,
		Learner:    engine,
		Logger:     log,
		Timeout:    cfg.ExecutionTimeout(),
	})
	if err != nil {
		return nil, err
	}

	service := &assistant.Service{
		Classifier: ai.NewKeywordClassifier(),
		Knowledge:  kb,
		Generator:  ai.NewTemplateGenerator(),
		Learner:    engine,
		Executor:   dispatcher,
		History:    historyStore,
		Logger:     log,
	}
	agent, err := assistant.NewAgent(service, cfg.WorkerCount(), cfg.QueueCapacity())
	if err != nil {
		return nil, err
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Safety:         classifier,
		Knowledge:      kb,
		History:        historyStore,
		Strategies:     strategies,
		ProbeTimeout:   cfg.ExecutionTimeout(),
	}

	log.Debug("container ready", map[string]interface{}{
		"data_dir": cfg.Storage.DataDir,
		"history":  cfg.HistoryBackend(),
		"workers":  agent.Workers(),
		"timeout":  cfg.ExecutionTimeout().String(),
	})

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Safety:         classifier,
		Knowledge:      kb,
		Learning:       engine,
		HistoryStore:   historyStore,
		Strategies:     strategies,
		Dispatcher:     dispatcher,
		Service:        service,
		Agent:          agent,
		DoctorService:  doctorService,
	}, nil
}

// API builds the HTTP handler set over the container's services.
func (c *Container) API() *httpapi.API {
	return &httpapi.API{
		Agent:     c.Agent,
		Knowledge: c.Knowledge,
		Learning:  c.Learning,
		Health:    c.DoctorService,
		Logger:    c.Logger,
	}
}

// Close drains the worker pool and releases storage handles.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if err := c.Agent.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}

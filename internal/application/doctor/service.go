package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// dangerousProbe must always be rejected by a healthy safety gate.
const dangerousProbe = "Runtime.getRuntime().exec(\"rm -rf /\")"

type probe struct {
	source string
	want   string
}

var probes = map[domain.Language]probe{
	domain.LanguageJava:       {source: `System.out.println("ok");`, want: "ok"},
	domain.LanguagePython:     {source: `print("ok")`, want: "ok"},
	domain.LanguageJavaScript: {source: "1 + 1", want: "Result: 2"},
	domain.LanguageGo:         {source: "1 + 1", want: "Result: 2"},
}

// degradable is implemented by history stores that can fall back.
type degradable interface {
	Degraded() bool
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Safety         ports.SafetyClassifier
	Knowledge      ports.KnowledgeRepository
	History        ports.HistoryRepository
	Strategies     []ports.ExecutionStrategy
	ProbeTimeout   time.Duration
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if s.ConfigProvider == nil {
		checks = append(checks, warn("Config file", "config provider not initialized"))
	} else if cfg, err := s.ConfigProvider.Load(ctx); err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, data dir %s", cfg.ConfigFormatVersion, cfg.Storage.DataDir)))
	}

	checks = append(checks, s.safetyCheck(), s.knowledgeCheck(), s.historyCheck())
	for _, strategy := range s.Strategies {
		checks = append(checks, s.strategyCheck(ctx, strategy))
	}
	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) safetyCheck() domain.HealthCheck {
	if s.Safety == nil {
		return warn("Safety rules", "classifier not initialized")
	}
	if s.Safety.IsSafe(dangerousProbe) {
		return fail("Safety rules", "dangerous probe was not rejected")
	}
	if !s.Safety.IsSafe(`print("hello")`) {
		return warn("Safety rules", "benign probe was rejected")
	}
	return ok("Safety rules", "denylist active")
}

func (s *Service) knowledgeCheck() domain.HealthCheck {
	if s.Knowledge == nil {
		return warn("Knowledge base", "store not initialized")
	}
	path := s.Knowledge.Path()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ok("Knowledge base", fmt.Sprintf("%s (not created yet)", path))
		}
		return fail("Knowledge base", err.Error())
	}
	return ok("Knowledge base", fmt.Sprintf("%s (%d entries)", path, s.Knowledge.Len()))
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.History == nil {
		return warn("History", "store not initialized")
	}
	if s.History.Path() == "" {
		return ok("History", "disabled")
	}
	if _, err := s.History.Records(1, ""); err != nil {
		return fail("History", err.Error())
	}
	if d, isDegradable := s.History.(degradable); isDegradable && d.Degraded() {
		return warn("History", fmt.Sprintf("sqlite unavailable, using %s", s.History.Path()))
	}
	return ok("History", s.History.Path())
}

func (s *Service) strategyCheck(ctx context.Context, strategy ports.ExecutionStrategy) domain.HealthCheck {
	lang := strategy.Language()
	name := fmt.Sprintf("Strategy %s", lang)
	p, known := probes[lang]
	if !known {
		return warn(name, "no probe available")
	}
	timeout := s.ProbeTimeout
	if timeout <= 0 {
		timeout = domain.DefaultExecutionTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := strategy.Run(ctx, p.source)
	if err != nil {
		return fail(name, err.Error())
	}
	if !res.Succeeded || !strings.Contains(res.Output, p.want) {
		return fail(name, fmt.Sprintf("unexpected probe output %q", res.Output))
	}
	return ok(name, string(res.Mode))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}

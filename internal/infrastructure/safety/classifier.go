package safety

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/filesystem"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// Classifier implements the SafetyClassifier port with a case-insensitive
// substring denylist.
type Classifier struct {
	mu    sync.RWMutex
	rules []compiledRule
	path  string
}

type compiledRule struct {
	needle string
	rule   domain.DenyRule
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		Denylist []domain.DenyRule `yaml:"denylist"`
	} `yaml:"rules"`
}

// NewClassifier loads rules from path, falling back to the built-in
// denylist when the file is absent or lists nothing.
func NewClassifier(path string) (*Classifier, error) {
	c := &Classifier{path: filesystem.ExpandPath(path)}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewDefaultClassifier uses the built-in denylist only.
func NewDefaultClassifier() *Classifier {
	return &Classifier{rules: compile(DefaultDenylist())}
}

// IsSafe implements ports.SafetyClassifier.
func (c *Classifier) IsSafe(source string) bool {
	return c.Assess(source).Safe
}

// Assess reports the first rule that trips, if any.
func (c *Classifier) Assess(source string) domain.SafetyVerdict {
	lower := strings.ToLower(source)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.rules {
		if strings.Contains(lower, r.needle) {
			return domain.SafetyVerdict{
				Safe:         false,
				MatchedToken: r.rule.Token,
				Reason:       r.rule.Message,
			}
		}
	}
	return domain.SafetyVerdict{Safe: true}
}

// Rules returns a copy of the active denylist.
func (c *Classifier) Rules() []domain.DenyRule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.DenyRule, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, r.rule)
	}
	return out
}

// Path is the rules file backing this classifier, empty for defaults only.
func (c *Classifier) Path() string {
	return c.path
}

// Reload re-reads the rules file and swaps the active denylist. On a parse
// error the previous rules stay in effect.
func (c *Classifier) Reload() error {
	rules, err := loadRules(c.path)
	if err != nil {
		return err
	}
	compiled := compile(rules)
	c.mu.Lock()
	c.rules = compiled
	c.mu.Unlock()
	return nil
}

func loadRules(path string) ([]domain.DenyRule, error) {
	if path == "" {
		return DefaultDenylist(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultDenylist(), nil
		}
		return nil, fmt.Errorf("read safety rules: %w", err)
	}
	var doc RulesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse safety rules %s: %w", path, err)
	}
	if len(doc.Rules.Denylist) == 0 {
		return DefaultDenylist(), nil
	}
	return doc.Rules.Denylist, nil
}

func compile(rules []domain.DenyRule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		needle := strings.ToLower(rule.Token)
		if strings.TrimSpace(needle) == "" {
			continue
		}
		if rule.Message == "" {
			rule.Message = fmt.Sprintf("contains %q", rule.Token)
		}
		out = append(out, compiledRule{needle: needle, rule: rule})
	}
	return out
}

// DefaultDenylist is the built-in set of forbidden constructs.
func DefaultDenylist() []domain.DenyRule {
	return []domain.DenyRule{
		{Token: "Runtime.getRuntime()", Message: "JVM runtime access"},
		{Token: "System.exit", Message: "Process exit"},
		{Token: "File.delete", Message: "File deletion"},
		{Token: "rm -rf", Message: "Recursive delete"},
		{Token: "del /f", Message: "Forced delete"},
		{Token: "format c:", Message: "Disk format"},
		{Token: "ProcessBuilder", Message: "Process spawning"},
		{Token: "exec(", Message: "Dynamic exec"},
		{Token: "Runtime", Message: "Runtime access"},
		{Token: "os.system", Message: "Shell escape"},
		{Token: "subprocess", Message: "Process spawning"},
		{Token: "child_process", Message: "Process spawning"},
		{Token: "process.exit", Message: "Process exit"},
		{Token: "os/exec", Message: "Process spawning"},
		{Token: "syscall", Message: "Raw system calls"},
		{Token: "shutil.rmtree", Message: "Recursive delete"},
		{Token: "os.remove", Message: "File deletion"},
	}
}

var _ ports.SafetyClassifier = (*Classifier)(nil)

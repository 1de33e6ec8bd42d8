package ai

import (
	"strings"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

type intentRule struct {
	intent   domain.Intent
	keywords []string
}

// Rules are checked in order. The first bucket with a hit wins.
var defaultIntentRules = []intentRule{
	{intent: domain.IntentCodeGeneration, keywords: []string{"code", "write", "program", "function"}},
	{intent: domain.IntentCodeExecution, keywords: []string{"execute", "run", "test"}},
	{intent: domain.IntentExplanation, keywords: []string{"explain", "how", "what", "why"}},
}

// KeywordClassifier buckets queries by substring hits on whitespace tokens.
type KeywordClassifier struct {
	rules []intentRule
}

// NewKeywordClassifier returns the classifier with the built-in buckets.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: defaultIntentRules}
}

// Classify implements ports.IntentClassifier.
func (c *KeywordClassifier) Classify(query string) domain.Intent {
	tokens := strings.Fields(strings.ToLower(query))
	for _, rule := range c.rules {
		if anyTokenContains(tokens, rule.keywords) {
			return rule.intent
		}
	}
	return domain.IntentGeneral
}

func anyTokenContains(tokens, keywords []string) bool {
	for _, tok := range tokens {
		for _, kw := range keywords {
			if strings.Contains(tok, kw) {
				return true
			}
		}
	}
	return false
}

var _ ports.IntentClassifier = (*KeywordClassifier)(nil)

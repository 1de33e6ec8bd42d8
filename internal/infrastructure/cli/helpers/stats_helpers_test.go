package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/aiagent-go/internal/domain"
)

func TestCalculateTopInputs(t *testing.T) {
	freq := map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}
	top := CalculateTopInputs(freq, 3)
	assert.Equal(t, []InputStatistic{{"c", 5}, {"a", 2}, {"b", 2}}, top)
	assert.Len(t, CalculateTopInputs(freq, 0), 4)
}

func TestCalculateSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, CalculateSuccessRate(1, 0))
	assert.Equal(t, 50.0, CalculateSuccessRate(1, 2))
}

func TestAnalyzeHistory(t *testing.T) {
	stats := AnalyzeHistory([]domain.HistoryRecord{
		{Kind: domain.HistoryQuery, Input: "hi", Intent: domain.IntentGeneral},
		{Kind: domain.HistoryQuery, Input: "hi", Intent: domain.IntentGeneral, FromKnowledge: true},
		{Kind: domain.HistoryExecution, Input: "\nprint('x')\nprint('y')", Language: domain.LanguagePython, Success: true},
		{Kind: domain.HistoryExecution, Input: "System.exit(0)", Language: domain.LanguageJava},
	})
	assert.Equal(t, 2, stats.Queries)
	assert.Equal(t, 1, stats.FromKnowledge)
	assert.Equal(t, 2, stats.Executions)
	assert.Equal(t, 1, stats.Successful)
	assert.Equal(t, 2, stats.InputFreq["hi"])
	assert.Equal(t, 1, stats.InputFreq["print('x')"])
	assert.Equal(t, 1, stats.LanguageCount[domain.LanguageJava])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b c", Truncate("a\n  b\tc", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
}

package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/aiagent-go/internal/domain"
)

// InputStatistic represents how often an input appears in history
type InputStatistic struct {
	Input string
	Count int
}

// CalculateTopInputs returns the top N most frequent inputs
// If limit is 0 or negative, returns all inputs
func CalculateTopInputs(frequency map[string]int, limit int) []InputStatistic {
	stats := make([]InputStatistic, 0, len(frequency))
	for input, count := range frequency {
		stats = append(stats, InputStatistic{Input: input, Count: count})
	}
	sortStatisticsByFrequency(stats)

	if shouldLimitResults(limit, len(stats)) {
		return stats[:limit]
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by input (ascending)
func sortStatisticsByFrequency(stats []InputStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Input < stats[j].Input
		}
		return stats[i].Count > stats[j].Count
	})
}

func shouldLimitResults(limit int, actualLength int) bool {
	return limit > 0 && actualLength > limit
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, executedCount int) float64 {
	if executedCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(executedCount) * 100.0
}

// HistoryStatistics summarizes a slice of history records
type HistoryStatistics struct {
	Queries       int
	Executions    int
	Successful    int
	FromKnowledge int
	InputFreq     map[string]int
	IntentCounts  map[domain.Intent]int
	LanguageCount map[domain.Language]int
}

// AnalyzeHistory computes per-kind counts and input frequencies
func AnalyzeHistory(records []domain.HistoryRecord) HistoryStatistics {
	stats := HistoryStatistics{
		InputFreq:     make(map[string]int),
		IntentCounts:  make(map[domain.Intent]int),
		LanguageCount: make(map[domain.Language]int),
	}
	for _, rec := range records {
		switch rec.Kind {
		case domain.HistoryExecution:
			stats.Executions++
			if rec.Success {
				stats.Successful++
			}
			stats.LanguageCount[rec.Language]++
		default:
			stats.Queries++
			if rec.FromKnowledge {
				stats.FromKnowledge++
			}
			stats.IntentCounts[rec.Intent]++
		}
		stats.InputFreq[FirstLine(rec.Input)]++
	}
	return stats
}

// FirstLine returns the first non-empty line of s, trimmed
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Truncate shortens s to max runes on one line, appending "..." when cut
func Truncate(s string, max int) string {
	flat := strings.Join(strings.Fields(s), " ")
	runes := []rune(flat)
	if max <= 0 || len(runes) <= max {
		return flat
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Package learning keeps a bounded record of interactions and a handful of
// weights nudged by execution outcomes. Response generation never reads it.
package learning

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// Engine implements ports.LearningRecorder and ports.LearningInspector.
type Engine struct {
	mu       sync.Mutex
	capacity int
	history  []domain.InteractionPattern
	weights  map[string]float64

	executions int
	successes  int

	now func() time.Time
}

// NewEngine returns an engine seeded with the default weights.
func NewEngine() *Engine {
	return &Engine{
		capacity: domain.LearningHistoryCapacity,
		history:  make([]domain.InteractionPattern, 0, domain.LearningHistoryCapacity),
		weights:  DefaultWeights(),
		now:      time.Now,
	}
}

// DefaultWeights returns a fresh copy of the initial weight table.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		domain.WeightQueryLength:     0.5,
		domain.WeightResponseQuality: 0.8,
		domain.WeightCodeSuccess:     0.9,
	}
}

// RecordInteraction appends a pattern, evicting the oldest once full.
func (e *Engine) RecordInteraction(query, response string) {
	pattern := domain.InteractionPattern{
		Input:     query,
		Output:    response,
		Features:  extractFeatures(query, response),
		Timestamp: e.now(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.history) >= e.capacity {
		copy(e.history, e.history[1:])
		e.history = e.history[:len(e.history)-1]
	}
	e.history = append(e.history, pattern)
}

// RecordExecution bumps code_success on success. Failures leave weights alone.
func (e *Engine) RecordExecution(_ string, _ domain.Language, result domain.ExecutionResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executions++
	if !result.Succeeded {
		return
	}
	e.successes++
	e.weights[domain.WeightCodeSuccess] = math.Min(domain.MaxWeight, e.weights[domain.WeightCodeSuccess]+domain.CodeSuccessIncrement)
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() domain.LearningSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	weights := make(map[string]float64, len(e.weights))
	for k, v := range e.weights {
		weights[k] = v
	}
	return domain.LearningSnapshot{
		Weights:      weights,
		Interactions: len(e.history),
		Executions:   e.executions,
		Successes:    e.successes,
	}
}

// Recent returns up to n of the newest patterns, oldest first.
func (e *Engine) Recent(n int) []domain.InteractionPattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n <= 0 || n > len(e.history) {
		n = len(e.history)
	}
	out := make([]domain.InteractionPattern, n)
	copy(out, e.history[len(e.history)-n:])
	return out
}

func extractFeatures(query, response string) map[string]float64 {
	hasCode := 0.0
	if strings.Contains(response, "{") || strings.Contains(response, "def ") {
		hasCode = 1.0
	}
	return map[string]float64{
		domain.FeatureQueryLength:    float64(len(query)),
		domain.FeatureResponseLength: float64(len(response)),
		domain.FeatureHasCode:        hasCode,
	}
}

var (
	_ ports.LearningRecorder  = (*Engine)(nil)
	_ ports.LearningInspector = (*Engine)(nil)
)

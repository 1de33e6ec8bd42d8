// Package assistant orchestrates the query and code execution flows.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// Service wires the classifier, knowledge store, generator, learner and
// executor into the two user-facing flows. History is optional.
type Service struct {
	Classifier ports.IntentClassifier
	Knowledge  ports.KnowledgeStore
	Generator  ports.ResponseGenerator
	Learner    ports.LearningRecorder
	Executor   ports.CodeExecutor
	History    ports.HistoryStore
	Logger     ports.Logger
}

var errDependencies = errors.New("assistant.Service dependencies not satisfied")

func (s *Service) ready() bool {
	return s != nil && s.Classifier != nil && s.Knowledge != nil && s.Generator != nil &&
		s.Executor != nil && s.Logger != nil
}

// ProcessQuery answers a query as plain text. Internal faults come back as
// "Error processing query: <msg>".
func (s *Service) ProcessQuery(ctx context.Context, query string) string {
	outcome, err := s.Answer(ctx, query)
	if err != nil {
		return domain.MsgQueryError + err.Error()
	}
	return outcome.Response
}

// Answer runs the query flow: classify, look up, then either enhance the
// hit or generate and store a fresh response.
func (s *Service) Answer(ctx context.Context, query string) (outcome domain.QueryOutcome, err error) {
	if !s.ready() {
		return domain.QueryOutcome{}, errDependencies
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
			s.Logger.Error("query flow panicked", err, map[string]interface{}{"query": query})
		}
	}()
	if ctx != nil {
		if cerr := ctx.Err(); cerr != nil {
			return domain.QueryOutcome{}, cerr
		}
	}

	intent := s.Classifier.Classify(query)
	outcome = domain.QueryOutcome{Query: query, Intent: intent}

	if hit, ok := s.Knowledge.Search(query); ok && strings.TrimSpace(hit) != "" {
		outcome.Response = s.Generator.Enhance(hit, intent)
		outcome.FromKnowledge = true
	} else {
		outcome.Response = s.Generator.Generate(query, intent)
		s.recordInteraction(query, outcome.Response)
		if serr := s.Knowledge.Store(query, outcome.Response); serr != nil {
			s.Logger.Warn("knowledge store failed", map[string]interface{}{
				"query": query,
				"error": serr.Error(),
			})
		}
	}
	outcome.DurationMS = time.Since(start).Milliseconds()

	s.Logger.Debug("query answered", map[string]interface{}{
		"intent":         string(intent),
		"from_knowledge": outcome.FromKnowledge,
		"duration_ms":    outcome.DurationMS,
	})
	s.saveHistory(domain.HistoryRecord{
		Kind:          domain.HistoryQuery,
		Input:         query,
		Output:        outcome.Response,
		Intent:        intent,
		Success:       true,
		FromKnowledge: outcome.FromKnowledge,
		DurationMS:    outcome.DurationMS,
	})
	return outcome, nil
}

// ExecuteCode runs source text through the executor and records history.
func (s *Service) ExecuteCode(ctx context.Context, code, language string) domain.ExecutionResult {
	if !s.ready() {
		return domain.FailedResult(domain.FailureStrategyFault, domain.MsgExecutionError+errDependencies.Error(), errDependencies.Error())
	}
	if ctx == nil {
		ctx = context.Background()
	}
	res := s.Executor.Execute(ctx, domain.ExecutionRequest{SourceText: code, Language: language})
	s.saveHistory(domain.HistoryRecord{
		ID:         res.RequestID,
		Kind:       domain.HistoryExecution,
		Input:      code,
		Output:     res.Output,
		Language:   res.Language,
		Success:    res.Succeeded,
		DurationMS: res.DurationMS,
	})
	return res
}

func (s *Service) recordInteraction(query, response string) {
	if s.Learner == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Warn("learning recorder panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
		}
	}()
	s.Learner.RecordInteraction(query, response)
}

func (s *Service) saveHistory(rec domain.HistoryRecord) {
	if s.History == nil {
		return
	}
	rec.Timestamp = time.Now().UTC()
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{
			"kind":  string(rec.Kind),
			"error": err.Error(),
		})
	}
}

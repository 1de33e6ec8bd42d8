package learning

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/aiagent-go/internal/domain"
)

func TestInitialWeights(t *testing.T) {
	snap := NewEngine().Snapshot()
	assert.Equal(t, 0.5, snap.Weights[domain.WeightQueryLength])
	assert.Equal(t, 0.8, snap.Weights[domain.WeightResponseQuality])
	assert.Equal(t, 0.9, snap.Weights[domain.WeightCodeSuccess])
	assert.Zero(t, snap.Interactions)
}

func TestRingBufferDropsOldest(t *testing.T) {
	e := NewEngine()
	for i := 0; i < domain.LearningHistoryCapacity+5; i++ {
		e.RecordInteraction(fmt.Sprintf("q%d", i), "r")
	}
	assert.Equal(t, domain.LearningHistoryCapacity, e.Snapshot().Interactions)

	recent := e.Recent(0)
	require.Len(t, recent, domain.LearningHistoryCapacity)
	assert.Equal(t, "q5", recent[0].Input)
	assert.Equal(t, "q104", recent[len(recent)-1].Input)
}

func TestFeatures(t *testing.T) {
	e := NewEngine()
	e.RecordInteraction("abc", "public class X {}")
	e.RecordInteraction("x", "def f(): pass")
	e.RecordInteraction("y", "plain text")

	recent := e.Recent(3)
	assert.Equal(t, 3.0, recent[0].Features[domain.FeatureQueryLength])
	assert.Equal(t, 17.0, recent[0].Features[domain.FeatureResponseLength])
	assert.Equal(t, 1.0, recent[0].Features[domain.FeatureHasCode])
	assert.Equal(t, 1.0, recent[1].Features[domain.FeatureHasCode])
	assert.Equal(t, 0.0, recent[2].Features[domain.FeatureHasCode])
}

func TestCodeSuccessIsMonotoneAndCapped(t *testing.T) {
	e := NewEngine()
	prev := e.Snapshot().Weights[domain.WeightCodeSuccess]
	for i := 0; i < 50; i++ {
		e.RecordExecution("code", domain.LanguageJava, domain.ExecutionResult{Succeeded: i%3 != 0})
		cur := e.Snapshot().Weights[domain.WeightCodeSuccess]
		assert.GreaterOrEqual(t, cur, prev)
		assert.LessOrEqual(t, cur, domain.MaxWeight)
		prev = cur
	}
	assert.Equal(t, domain.MaxWeight, prev)

	snap := e.Snapshot()
	assert.Equal(t, 50, snap.Executions)
	assert.Equal(t, 33, snap.Successes)
}

func TestFailureLeavesWeightsUnchanged(t *testing.T) {
	e := NewEngine()
	e.RecordExecution("code", domain.LanguagePython, domain.ExecutionResult{Succeeded: false})
	assert.Equal(t, DefaultWeights(), e.Snapshot().Weights)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := NewEngine()
	snap := e.Snapshot()
	snap.Weights[domain.WeightCodeSuccess] = 0
	assert.Equal(t, 0.9, e.Snapshot().Weights[domain.WeightCodeSuccess])
}

func TestConcurrentRecording(t *testing.T) {
	e := NewEngine()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				e.RecordInteraction("q", "r")
				e.RecordExecution("c", domain.LanguageGo, domain.ExecutionResult{Succeeded: true})
			}
		}()
	}
	wg.Wait()
	snap := e.Snapshot()
	assert.Equal(t, domain.LearningHistoryCapacity, snap.Interactions)
	assert.Equal(t, 200, snap.Executions)
	assert.Equal(t, domain.MaxWeight, snap.Weights[domain.WeightCodeSuccess])
}

package domain

import "time"

// Weight names tracked by the learning engine.
const (
	WeightQueryLength     = "query_length"
	WeightResponseQuality = "response_quality"
	WeightCodeSuccess     = "code_success"
)

// Feature names extracted from an interaction.
const (
	FeatureQueryLength    = "query_length"
	FeatureResponseLength = "response_length"
	FeatureHasCode        = "has_code"
)

// InteractionPattern is one entry of the learning ring buffer.
type InteractionPattern struct {
	Input     string             `json:"input"`
	Output    string             `json:"output"`
	Features  map[string]float64 `json:"features"`
	Timestamp time.Time          `json:"timestamp"`
}

// LearningSnapshot is a read-only copy of the learner state.
type LearningSnapshot struct {
	Weights      map[string]float64 `json:"weights"`
	Interactions int                `json:"interactions"`
	Executions   int                `json:"executions"`
	Successes    int                `json:"successes"`
}

package domain

// Intent describes what kind of answer a query expects.
type Intent string

const (
	IntentCodeGeneration Intent = "code_generation"
	IntentCodeExecution  Intent = "code_execution"
	IntentExplanation    Intent = "explanation"
	IntentGeneral        Intent = "general"
)

// QueryOutcome is the result of the query flow before it is flattened to text.
type QueryOutcome struct {
	Query         string
	Intent        Intent
	Response      string
	FromKnowledge bool
	DurationMS    int64
}

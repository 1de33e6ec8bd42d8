package domain

// DenyRule is a single forbidden substring.
type DenyRule struct {
	Token   string `yaml:"token" json:"token"`
	Message string `yaml:"message" json:"message"`
}

// SafetyVerdict is the outcome of inspecting source text.
type SafetyVerdict struct {
	Safe         bool
	MatchedToken string
	Reason       string
}

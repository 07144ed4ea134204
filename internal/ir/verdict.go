package ir

// ViolationKind classifies a detected contract gap.
type ViolationKind string

const (
	UnreflectedRemoval    ViolationKind = "unreflected_removal"
	UnreflectedRename     ViolationKind = "unreflected_rename"
	UnreflectedTypeChange ViolationKind = "unreflected_type_change"
	UnmatchedModel        ViolationKind = "unmatched_model"
)

// Violation is a business-level finding: a model change the contract
// does not cover. Never fatal, always aggregated.
type Violation struct {
	Change Change        `json:"change"`
	Kind   ViolationKind `json:"kind"`
	// Schema is set when a contract schema was matched but found
	// inconsistent with the change. Empty for UnmatchedModel.
	Schema string `json:"schema,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Skipped records a model member the extractor could not interpret.
// Recovered locally, reported as a diagnostic, never fatal.
type Skipped struct {
	Model  string `json:"model"`
	Member string `json:"member,omitempty"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Diagnostics aggregates non-fatal observations from a run.
type Diagnostics struct {
	Skipped       []Skipped `json:"skipped,omitempty"`
	ParseWarnings []string  `json:"parse_warnings,omitempty"`
}

// Verdict is the sole output contract with the CLI layer.
type Verdict struct {
	Violations  []Violation `json:"violations"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Passed      bool        `json:"passed"`
}

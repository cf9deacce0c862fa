package models

// ToolOutput is the outcome of one tool invocation handed to agents as
// context and returned in the execution report.
type ToolOutput struct {
	// Result is the tool's text result, or an error string on failure.
	Result string `json:"result"`
	// QueryUsed is the query that produced Result (the fallback query
	// when a retry won).
	QueryUsed string `json:"query_used"`
	// Confidence is the scored usefulness of Result.
	Confidence float64 `json:"confidence"`
	// UsageID references the usage log record behind Result.
	UsageID string `json:"usage_id,omitempty"`
	// Retry is true when Result came from the relaxed-query retry.
	Retry bool `json:"retry,omitempty"`
	// Skipped is true when a similar recent query suppressed invocation.
	Skipped bool `json:"skipped,omitempty"`
	// Error is true when the invocation itself failed.
	Error bool `json:"error,omitempty"`
}

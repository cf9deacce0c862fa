// Package tools implements the information tools the planner can
// schedule, plus the executor that invokes them with confidence scoring,
// query deduplication, and a single relaxed-query retry.
package tools

import "context"

// Tool is one invokable information source.
type Tool interface {
	// Name is the identifier query components reference.
	Name() string
	// Invoke runs the tool with a query. option carries a tool-specific
	// parameter and may be empty.
	Invoke(ctx context.Context, query, option string) (string, error)
	// RelaxQuery produces the more general fallback query used for the
	// single low-confidence retry. Returning the input unchanged
	// disables the retry.
	RelaxQuery(query string) string
}

// Package llm provides the agent invocation boundary: the supervisor
// hands an agent a prepared context and gets text back. The orchestrator
// owns context construction; this package owns the model call.
package llm

import (
	"context"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// Invocation is one agent call. Context arrives fully built (request,
// tool outputs, fenced prior agent outputs, instructions) so invokers
// never re-derive orchestration state.
type Invocation struct {
	// AgentID identifies the agent being invoked.
	AgentID string
	// Profile is the agent's registry profile; nil for unknown agents.
	Profile *models.AgentProfile
	// Context is the complete input context text.
	Context string
}

// Result is an agent's response.
type Result struct {
	// OutputText is the agent's generated text.
	OutputText string
	// UsedTools lists tools the agent reported consulting.
	UsedTools []string
}

// Invoker turns an invocation into an agent response.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) (*Result, error)
}

package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/denisogg/langgraph-ma/internal/usage"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// DefaultTimeout bounds each individual tool invocation.
const DefaultTimeout = 30 * time.Second

// Executor invokes tools on behalf of a plan. Every invocation is scored
// and appended to the session's usage log; a low-confidence first attempt
// earns exactly one retry with a relaxed query.
type Executor struct {
	tools   map[string]Tool
	tracker *usage.Tracker
	timeout time.Duration
}

// NewExecutor creates an Executor over the given tools.
func NewExecutor(tracker *usage.Tracker, tools ...Tool) *Executor {
	m := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		m[tool.Name()] = tool
	}
	return &Executor{
		tools:   m,
		tracker: tracker,
		timeout: DefaultTimeout,
	}
}

// SetTimeout overrides the per-invocation timeout.
func (e *Executor) SetTimeout(d time.Duration) {
	e.timeout = d
}

// Has reports whether a tool is registered.
func (e *Executor) Has(name string) bool {
	_, ok := e.tools[name]
	return ok
}

// Execute runs every named tool against the request, in order. Failures
// become error-string outputs rather than aborting; a tool whose query
// was recently issued is skipped without touching the usage log.
func (e *Executor) Execute(ctx context.Context, toolNames []string, text string, entities models.Entities) map[string]models.ToolOutput {
	outputs := make(map[string]models.ToolOutput, len(toolNames))
	for _, name := range toolNames {
		tool, ok := e.tools[name]
		if !ok {
			outputs[name] = models.ToolOutput{
				Result: fmt.Sprintf("Tool %q is not available", name),
				Error:  true,
			}
			continue
		}
		outputs[name] = e.executeOne(ctx, tool, text, entities)
	}
	return outputs
}

// executeOne runs the full state machine for a single tool call:
// dedup check, invocation, scoring, and at most one relaxed retry.
func (e *Executor) executeOne(ctx context.Context, tool Tool, text string, entities models.Entities) models.ToolOutput {
	query := GenerateQuery(text, entities)

	if e.tracker.RecentlyUsed(tool.Name(), query) {
		return models.ToolOutput{
			Result:    "Skipped: a similar query ran recently",
			QueryUsed: query,
			Skipped:   true,
		}
	}

	output, confidence := e.invoke(ctx, tool, query, false)
	if output.Error || confidence >= usage.RetryThreshold {
		return output
	}

	fallback := tool.RelaxQuery(query)
	if fallback == query {
		return output
	}

	retryOutput, retryConfidence := e.invoke(ctx, tool, fallback, true)
	if !retryOutput.Error && retryConfidence > confidence {
		return retryOutput
	}
	return output
}

// invoke runs one attempt, scores it, and appends the usage record.
func (e *Executor) invoke(ctx context.Context, tool Tool, query string, retry bool) (models.ToolOutput, float64) {
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := tool.Invoke(callCtx, query, "")
	if err != nil {
		errResult := fmt.Sprintf("Tool execution error: %v", err)
		rec := &models.ToolUsageRecord{
			ToolName:        tool.Name(),
			Query:           query,
			Result:          errResult,
			ConfidenceScore: 0,
			Success:         false,
			Retry:           retry,
		}
		e.record(rec)
		return models.ToolOutput{
			Result:    errResult,
			QueryUsed: query,
			UsageID:   rec.ID,
			Retry:     retry,
			Error:     true,
		}, 0
	}

	confidence := e.tracker.Confidence(tool.Name(), result)
	rec := &models.ToolUsageRecord{
		ToolName:        tool.Name(),
		Query:           query,
		Result:          result,
		ConfidenceScore: confidence,
		Success:         confidence > usage.RetryThreshold,
		Retry:           retry,
	}
	e.record(rec)

	return models.ToolOutput{
		Result:     result,
		QueryUsed:  query,
		Confidence: confidence,
		UsageID:    rec.ID,
		Retry:      retry,
	}, confidence
}

func (e *Executor) record(rec *models.ToolUsageRecord) {
	// Log persistence failing must not fail the tool call.
	_ = e.tracker.Record(rec)
}

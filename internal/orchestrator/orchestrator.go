// Package orchestrator walks an execution plan: tools and knowledge
// lookups first, then agents in sequence with accumulated context. Every
// step failure is absorbed into the data it would have produced, so a run
// always returns a complete report.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/denisogg/langgraph-ma/internal/knowledge"
	"github.com/denisogg/langgraph-ma/internal/llm"
	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/internal/tools"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// NoResponseSentinel is the final response of a plan with no agents.
const NoResponseSentinel = "No response generated"

// DefaultAgentTimeout bounds each agent invocation.
const DefaultAgentTimeout = 2 * time.Minute

// TraceStep is one entry in the execution trace.
type TraceStep struct {
	// Step is the 1-based position in the run.
	Step int `json:"step"`
	// Kind is "tool", "knowledge", or "agent".
	Kind string `json:"kind"`
	// ResourceID names the tool, source, or agent that ran.
	ResourceID string `json:"resource_id"`
	// OK is false when the step's failure was absorbed.
	OK bool `json:"ok"`
	// Detail is a short human-readable outcome summary.
	Detail string `json:"detail,omitempty"`
	// Duration is how long the step took.
	Duration time.Duration `json:"duration"`
}

// Report is the full outcome of one orchestrated request.
type Report struct {
	// FinalResponse is the last agent's output, or NoResponseSentinel.
	FinalResponse string `json:"final_response"`
	// AgentOutputs maps agent ID to its output (error strings included).
	AgentOutputs map[string]string `json:"agent_outputs"`
	// ToolOutputs maps tool name to its gathered output.
	ToolOutputs map[string]models.ToolOutput `json:"tool_outputs,omitempty"`
	// KnowledgeOutputs maps knowledge source to its looked-up content.
	KnowledgeOutputs map[string]string `json:"knowledge_outputs,omitempty"`
	// Trace records every step in execution order.
	Trace []TraceStep `json:"trace"`
	// Strategy and ContextFusion echo the plan's labels.
	Strategy      models.Strategy   `json:"strategy"`
	ContextFusion models.FusionMode `json:"context_fusion"`
	// PrimaryAgent and AgentSequence echo the plan's routing.
	PrimaryAgent  string   `json:"primary_agent"`
	AgentSequence []string `json:"agent_sequence"`
}

// Orchestrator executes plans. Construct one per process; runs are
// independent and safe to issue concurrently for distinct sessions.
type Orchestrator struct {
	registry  *registry.Registry
	invoker   llm.Invoker
	tools     *tools.Executor
	knowledge *knowledge.Catalog
	logger    *DebugLogger

	agentTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithKnowledge wires the knowledge catalog used for lookups.
func WithKnowledge(c *knowledge.Catalog) Option {
	return func(o *Orchestrator) { o.knowledge = c }
}

// WithAgentTimeout overrides the per-agent invocation timeout.
func WithAgentTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.agentTimeout = d }
}

// New creates an Orchestrator.
func New(reg *registry.Registry, invoker llm.Invoker, toolExec *tools.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:     reg,
		invoker:      invoker,
		tools:        toolExec,
		logger:       &DebugLogger{},
		agentTimeout: DefaultAgentTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Execute walks the plan for a request. Tools run first, then knowledge
// lookups, then agents strictly in sequence order; the executor never
// reorders the sequence, so every agent runs after its dependencies.
func (o *Orchestrator) Execute(ctx context.Context, p *models.ExecutionPlan, request string, history []string) *Report {
	report := &Report{
		AgentOutputs:  make(map[string]string),
		Strategy:      p.Strategy,
		ContextFusion: p.ContextFusion,
		PrimaryAgent:  p.PrimaryAgent,
		AgentSequence: p.AgentSequence,
	}

	o.logger.Log("executing plan: strategy=%s fusion=%s agents=%v tools=%v",
		p.Strategy, p.ContextFusion, p.AgentSequence, p.ToolsNeeded)

	step := 0
	if len(p.ToolsNeeded) > 0 && o.tools != nil {
		entities := planEntities(p)
		start := time.Now()
		report.ToolOutputs = o.tools.Execute(ctx, p.ToolsNeeded, request, entities)
		elapsed := time.Since(start)
		for _, name := range p.ToolsNeeded {
			out := report.ToolOutputs[name]
			step++
			report.Trace = append(report.Trace, TraceStep{
				Step:       step,
				Kind:       "tool",
				ResourceID: name,
				OK:         !out.Error,
				Detail:     traceDetail(out),
				Duration:   elapsed / time.Duration(len(p.ToolsNeeded)),
			})
		}
	}

	for _, name := range p.KnowledgeNeeded {
		step++
		start := time.Now()
		content, err := o.lookupKnowledge(name)
		ok := err == nil
		if err != nil {
			content = fmt.Sprintf("Knowledge lookup error: %v", err)
		}
		if report.KnowledgeOutputs == nil {
			report.KnowledgeOutputs = make(map[string]string)
		}
		report.KnowledgeOutputs[name] = content
		report.Trace = append(report.Trace, TraceStep{
			Step:       step,
			Kind:       "knowledge",
			ResourceID: name,
			OK:         ok,
			Duration:   time.Since(start),
		})
	}

	for i, agentID := range p.AgentSequence {
		step++
		start := time.Now()
		output, err := o.invokeAgent(ctx, p, report, request, history, i)
		ok := err == nil
		if err != nil {
			// The error string stands in for the agent's output so
			// downstream agents still receive something for this slot.
			output = fmt.Sprintf("Agent %s error: %v", agentID, err)
			o.logger.Log("agent %s failed: %v", agentID, err)
		}
		report.AgentOutputs[agentID] = output
		report.Trace = append(report.Trace, TraceStep{
			Step:       step,
			Kind:       "agent",
			ResourceID: agentID,
			OK:         ok,
			Detail:     fmt.Sprintf("agent %d of %d", i+1, len(p.AgentSequence)),
			Duration:   time.Since(start),
		})
	}

	if n := len(p.AgentSequence); n > 0 {
		report.FinalResponse = report.AgentOutputs[p.AgentSequence[n-1]]
	} else {
		report.FinalResponse = NoResponseSentinel
	}

	o.logger.Log("plan complete: %d steps, final from %q", step, report.PrimaryAgent)
	return report
}

// invokeAgent builds the agent's context and calls through the invoker
// with a bounded timeout.
func (o *Orchestrator) invokeAgent(ctx context.Context, p *models.ExecutionPlan, report *Report, request string, history []string, position int) (string, error) {
	agentID := p.AgentSequence[position]
	profile, _ := o.registry.Get(agentID)

	callCtx, cancel := context.WithTimeout(ctx, o.agentTimeout)
	defer cancel()

	result, err := o.invoker.Invoke(callCtx, llm.Invocation{
		AgentID: agentID,
		Profile: profile,
		Context: o.buildContext(p, report, request, history, position),
	})
	if err != nil {
		return "", err
	}
	return result.OutputText, nil
}

// lookupKnowledge resolves one knowledge source.
func (o *Orchestrator) lookupKnowledge(name string) (string, error) {
	if o.knowledge == nil {
		return "", fmt.Errorf("no knowledge catalog configured")
	}
	return o.knowledge.Lookup(name)
}

// planEntities recovers the request entities carried on the plan's
// components for tool query generation.
func planEntities(p *models.ExecutionPlan) models.Entities {
	for _, c := range p.Components {
		if len(c.Entities) > 0 {
			return c.Entities
		}
	}
	return models.Entities{}
}

func traceDetail(out models.ToolOutput) string {
	switch {
	case out.Skipped:
		return "skipped: similar recent query"
	case out.Error:
		return "failed"
	case out.Retry:
		return fmt.Sprintf("retried, confidence %.2f", out.Confidence)
	default:
		return fmt.Sprintf("confidence %.2f", out.Confidence)
	}
}

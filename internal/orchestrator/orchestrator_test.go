package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/denisogg/langgraph-ma/internal/llm"
	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// fakeInvoker returns scripted outputs per agent and records the
// invocations it received.
type fakeInvoker struct {
	outputs     map[string]string
	errs        map[string]error
	invocations []llm.Invocation
}

func (f *fakeInvoker) Invoke(ctx context.Context, inv llm.Invocation) (*llm.Result, error) {
	f.invocations = append(f.invocations, inv)
	if err := f.errs[inv.AgentID]; err != nil {
		return nil, err
	}
	return &llm.Result{OutputText: f.outputs[inv.AgentID]}, nil
}

func multiAgentPlan() *models.ExecutionPlan {
	return &models.ExecutionPlan{
		Components: []models.QueryComponent{
			{ResourceType: models.ResourceAgent, ResourceID: "researcher", Priority: 1},
			{ResourceType: models.ResourceAgent, ResourceID: "granny", Priority: 2, Dependencies: []string{"researcher"}},
		},
		Strategy:           models.StrategyMultiAgentSequential,
		ContextFusion:      models.FusionPersonaStorytelling,
		PrimaryAgent:       "researcher",
		AgentSequence:      []string{"researcher", "granny"},
		RequiresMultiAgent: true,
	}
}

func TestExecuteMultiAgentSequence(t *testing.T) {
	invoker := &fakeInvoker{outputs: map[string]string{
		"researcher": "Weather analysis: sunny across the region.",
		"granny":     "Ah, child, let me tell you about sunshine.",
	}}
	o := New(registry.New(), invoker, nil)

	report := o.Execute(context.Background(), multiAgentPlan(), "analysis about weather, granny style", nil)

	if report.FinalResponse != "Ah, child, let me tell you about sunshine." {
		t.Errorf("FinalResponse = %q, want last agent's output", report.FinalResponse)
	}
	if len(invoker.invocations) != 2 {
		t.Fatalf("Expected 2 invocations, got %d", len(invoker.invocations))
	}
	if invoker.invocations[0].AgentID != "researcher" || invoker.invocations[1].AgentID != "granny" {
		t.Errorf("Agents invoked out of order: %v", []string{invoker.invocations[0].AgentID, invoker.invocations[1].AgentID})
	}

	// Second agent sees the first agent's fenced output.
	second := invoker.invocations[1].Context
	if !strings.Contains(second, "--- RESEARCHER OUTPUT ---") {
		t.Errorf("Second context missing fenced prior output:\n%s", second)
	}
	if !strings.Contains(second, "Weather analysis: sunny") {
		t.Errorf("Second context missing prior output text:\n%s", second)
	}
	if !strings.Contains(second, "Do not repeat or simulate responses from other agents") {
		t.Errorf("Second context missing impersonation guard:\n%s", second)
	}

	// First agent sees no prior outputs.
	first := invoker.invocations[0].Context
	if strings.Contains(first, "Previous agent results") {
		t.Errorf("First context must not contain prior outputs:\n%s", first)
	}
	if !strings.Contains(first, "Original request: analysis about weather") {
		t.Errorf("First context missing request:\n%s", first)
	}
}

func TestPriorOutputTruncated(t *testing.T) {
	long := strings.Repeat("x", priorOutputLimit+200)
	invoker := &fakeInvoker{outputs: map[string]string{
		"researcher": long,
		"granny":     "short",
	}}
	o := New(registry.New(), invoker, nil)

	o.Execute(context.Background(), multiAgentPlan(), "request", nil)

	second := invoker.invocations[1].Context
	if !strings.Contains(second, "... [truncated]") {
		t.Error("Expected truncation marker in second agent's context")
	}
	if strings.Contains(second, long) {
		t.Error("Full prior output leaked into the context")
	}
}

func TestPriorOutputTruncationRuneSafe(t *testing.T) {
	long := strings.Repeat("ă", priorOutputLimit+100)
	invoker := &fakeInvoker{outputs: map[string]string{
		"researcher": long,
		"granny":     "short",
	}}
	o := New(registry.New(), invoker, nil)

	o.Execute(context.Background(), multiAgentPlan(), "request", nil)

	second := invoker.invocations[1].Context
	if !utf8.ValidString(second) {
		t.Fatal("Truncation produced invalid UTF-8 in the context")
	}
	want := strings.Repeat("ă", priorOutputLimit) + "... [truncated]"
	if !strings.Contains(second, want) {
		t.Error("Expected the prior output cut at a full rune count")
	}
}

func TestAgentFailureAbsorbed(t *testing.T) {
	invoker := &fakeInvoker{
		outputs: map[string]string{"granny": "still here"},
		errs:    map[string]error{"researcher": fmt.Errorf("model unavailable")},
	}
	o := New(registry.New(), invoker, nil)

	report := o.Execute(context.Background(), multiAgentPlan(), "request", nil)

	if len(invoker.invocations) != 2 {
		t.Fatalf("Failure must not stop the sequence, got %d invocations", len(invoker.invocations))
	}
	if !strings.Contains(report.AgentOutputs["researcher"], "model unavailable") {
		t.Errorf("Failed agent's output = %q, want error string", report.AgentOutputs["researcher"])
	}
	if report.FinalResponse != "still here" {
		t.Errorf("FinalResponse = %q, want last agent's output", report.FinalResponse)
	}

	// The second agent still receives something for the failed slot.
	second := invoker.invocations[1].Context
	if !strings.Contains(second, "model unavailable") {
		t.Errorf("Second context missing failed agent's error slot:\n%s", second)
	}

	var agentSteps []TraceStep
	for _, step := range report.Trace {
		if step.Kind == "agent" {
			agentSteps = append(agentSteps, step)
		}
	}
	if len(agentSteps) != 2 || agentSteps[0].OK || !agentSteps[1].OK {
		t.Errorf("Trace = %+v, want failed first step and ok second", agentSteps)
	}
}

func TestLastAgentFailureStillProducesResponse(t *testing.T) {
	invoker := &fakeInvoker{
		outputs: map[string]string{"researcher": "findings"},
		errs:    map[string]error{"granny": fmt.Errorf("timeout")},
	}
	o := New(registry.New(), invoker, nil)

	report := o.Execute(context.Background(), multiAgentPlan(), "request", nil)

	if !strings.Contains(report.FinalResponse, "timeout") {
		t.Errorf("FinalResponse = %q, want the degraded error string", report.FinalResponse)
	}
}

func TestEmptySequenceSentinel(t *testing.T) {
	o := New(registry.New(), &fakeInvoker{}, nil)

	p := &models.ExecutionPlan{
		Strategy:      models.StrategySequential,
		ContextFusion: models.FusionNarrative,
		PrimaryAgent:  "story_creator",
	}
	report := o.Execute(context.Background(), p, "request", nil)

	if report.FinalResponse != NoResponseSentinel {
		t.Errorf("FinalResponse = %q, want sentinel", report.FinalResponse)
	}
}

func TestHistoryIncludedInContext(t *testing.T) {
	invoker := &fakeInvoker{outputs: map[string]string{"researcher": "out", "granny": "out"}}
	o := New(registry.New(), invoker, nil)

	history := []string{"user: hello", "granny: welcome, dear"}
	o.Execute(context.Background(), multiAgentPlan(), "request", history)

	first := invoker.invocations[0].Context
	if !strings.Contains(first, "granny: welcome, dear") {
		t.Errorf("Context missing conversation history:\n%s", first)
	}
}

func TestFusionInstructionsVaryByMode(t *testing.T) {
	invoker := &fakeInvoker{outputs: map[string]string{"researcher": "out", "granny": "out"}}
	o := New(registry.New(), invoker, nil)

	p := multiAgentPlan()
	p.ContextFusion = models.FusionFactual
	o.Execute(context.Background(), p, "request", nil)

	factual := invoker.invocations[0].Context
	if !strings.Contains(factual, "Integrate the gathered facts") {
		t.Errorf("Expected factual instructions, got:\n%s", factual)
	}

	invoker.invocations = nil
	p.ContextFusion = models.FusionPersonaStorytelling
	o.Execute(context.Background(), p, "request", nil)

	persona := invoker.invocations[0].Context
	if !strings.Contains(persona, "Stay fully in character") {
		t.Errorf("Expected persona instructions, got:\n%s", persona)
	}
}

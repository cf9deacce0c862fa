package plan

import (
	"testing"

	"github.com/denisogg/langgraph-ma/internal/decompose"
	"github.com/denisogg/langgraph-ma/internal/extract"
	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// buildFor runs the full extract/decompose/plan pipeline for a request
// against the default agent catalog.
func buildFor(t *testing.T, text string) *models.ExecutionPlan {
	t.Helper()
	reg := registry.New()
	entities, intents := extract.New(reg).Extract(text)
	components := decompose.New(reg, nil).Decompose(text, entities, intents)
	return New(reg).Build(components)
}

func TestSingleAgentPlan(t *testing.T) {
	p := buildFor(t, "tell me a funny story about dragons")

	if p.RequiresMultiAgent {
		t.Error("Expected single-agent plan")
	}
	if p.PrimaryAgent != "parody_creator" {
		t.Errorf("PrimaryAgent = %q, want parody_creator", p.PrimaryAgent)
	}
	if len(p.ToolsNeeded) != 0 {
		t.Errorf("ToolsNeeded = %v, want empty", p.ToolsNeeded)
	}
	if p.Strategy != models.StrategySequential {
		t.Errorf("Strategy = %q, want sequential", p.Strategy)
	}
}

func TestToolBeforeAgentOrdering(t *testing.T) {
	p := buildFor(t, "what's the weather in Paris today and can you make it into a joke")

	if len(p.ToolsNeeded) == 0 {
		t.Fatal("Expected tools in plan")
	}
	if p.PrimaryAgent != "parody_creator" {
		t.Errorf("PrimaryAgent = %q, want parody_creator", p.PrimaryAgent)
	}

	// Tool components sort before agent components.
	sawAgent := false
	for _, c := range p.Components {
		if c.ResourceType == models.ResourceAgent {
			sawAgent = true
		}
		if c.ResourceType == models.ResourceTool && sawAgent {
			t.Error("Tool component ordered after an agent component")
		}
	}
}

func TestMultiAgentPlan(t *testing.T) {
	p := buildFor(t, "make me an analysis about weather and let granny tell me about it")

	if !p.RequiresMultiAgent {
		t.Fatal("Expected multi-agent plan")
	}
	if len(p.AgentSequence) != 2 {
		t.Fatalf("AgentSequence = %v, want 2 entries", p.AgentSequence)
	}
	if p.Strategy != models.StrategyMultiAgentSequential {
		t.Errorf("Strategy = %q, want multi_agent_sequential", p.Strategy)
	}
	if p.PrimaryAgent != p.AgentSequence[0] {
		t.Errorf("PrimaryAgent = %q, want first of sequence %q", p.PrimaryAgent, p.AgentSequence[0])
	}
	if p.ContextFusion != models.FusionPersonaStorytelling {
		t.Errorf("ContextFusion = %q, want persona_integrated_storytelling", p.ContextFusion)
	}
}

func TestMultiAgentInvariant(t *testing.T) {
	texts := []string{
		"tell me a funny story about dragons",
		"what's the weather in Paris today and can you make it into a joke",
		"make me an analysis about weather and let granny tell me about it",
		"research electric cars and write a story about them",
		"hello there",
	}
	for _, text := range texts {
		p := buildFor(t, text)
		if p.RequiresMultiAgent != (len(p.AgentSequence) > 1) {
			t.Errorf("%q: RequiresMultiAgent = %v with sequence %v", text, p.RequiresMultiAgent, p.AgentSequence)
		}
	}
}

func TestToolsDeduplicated(t *testing.T) {
	reg := registry.New()
	components := []models.QueryComponent{
		{ResourceType: models.ResourceTool, ResourceID: "websearch", Priority: 0},
		{ResourceType: models.ResourceTool, ResourceID: "websearch", Priority: 0},
		{ResourceType: models.ResourceKnowledge, ResourceID: "halkidiki_guide", Priority: 0},
		{ResourceType: models.ResourceKnowledge, ResourceID: "halkidiki_guide", Priority: 0},
		{ResourceType: models.ResourceAgent, ResourceID: "granny", Priority: 1},
	}
	p := New(reg).Build(components)

	if len(p.ToolsNeeded) != 1 {
		t.Errorf("ToolsNeeded = %v, want 1 entry", p.ToolsNeeded)
	}
	if len(p.KnowledgeNeeded) != 1 {
		t.Errorf("KnowledgeNeeded = %v, want 1 entry", p.KnowledgeNeeded)
	}
}

func TestEmptyComponentsFallsBackToDefault(t *testing.T) {
	p := New(registry.New()).Build(nil)

	if p.PrimaryAgent != DefaultAgentID {
		t.Errorf("PrimaryAgent = %q, want %q", p.PrimaryAgent, DefaultAgentID)
	}
	if p.RequiresMultiAgent {
		t.Error("Empty plan must not require multiple agents")
	}
	if p.Strategy != models.StrategySequential {
		t.Errorf("Strategy = %q, want sequential", p.Strategy)
	}
}

func TestFactualFusionForInformationIntent(t *testing.T) {
	reg := registry.New()
	components := []models.QueryComponent{
		{ResourceType: models.ResourceAgent, ResourceID: "researcher", Intent: models.IntentInformation, Priority: 1},
	}
	p := New(reg).Build(components)

	if p.ContextFusion != models.FusionFactual {
		t.Errorf("ContextFusion = %q, want factual_integration", p.ContextFusion)
	}
}

func TestHierarchicalStrategy(t *testing.T) {
	reg := registry.New()
	components := []models.QueryComponent{
		{ResourceType: models.ResourceTool, ResourceID: "websearch", Priority: 0},
		{ResourceType: models.ResourceKnowledge, ResourceID: "halkidiki_guide", Priority: 0},
		{ResourceType: models.ResourceAgent, ResourceID: "granny", Priority: 1},
	}
	p := New(reg).Build(components)

	if p.Strategy != models.StrategyHierarchical {
		t.Errorf("Strategy = %q, want hierarchical", p.Strategy)
	}
}

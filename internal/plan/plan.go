// Package plan builds the execution plan for a decomposed request: it
// orders components, derives the agent sequence, and selects the strategy
// and context-fusion mode labels that steer orchestration.
package plan

import (
	"sort"

	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// DefaultAgentID receives the plan when no agent component was produced.
const DefaultAgentID = "story_creator"

// Builder turns component lists into execution plans. The registry is
// consulted only for capability checks when picking the fusion mode.
type Builder struct {
	registry *registry.Registry
}

// New creates a Builder.
func New(reg *registry.Registry) *Builder {
	return &Builder{registry: reg}
}

// Build constructs the plan. Components sort by priority ascending, so
// tool and knowledge components run before agents; agents keep their
// decomposer-assigned order. The plan is read-only after this returns.
func (b *Builder) Build(components []models.QueryComponent) *models.ExecutionPlan {
	ordered := make([]models.QueryComponent, len(components))
	copy(ordered, components)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	p := &models.ExecutionPlan{Components: ordered}

	toolsSeen := map[string]bool{}
	knowledgeSeen := map[string]bool{}
	for _, c := range ordered {
		switch c.ResourceType {
		case models.ResourceAgent:
			p.AgentSequence = append(p.AgentSequence, c.ResourceID)
		case models.ResourceTool:
			if !toolsSeen[c.ResourceID] {
				toolsSeen[c.ResourceID] = true
				p.ToolsNeeded = append(p.ToolsNeeded, c.ResourceID)
			}
		case models.ResourceKnowledge:
			if !knowledgeSeen[c.ResourceID] {
				knowledgeSeen[c.ResourceID] = true
				p.KnowledgeNeeded = append(p.KnowledgeNeeded, c.ResourceID)
			}
		}
	}

	p.RequiresMultiAgent = len(p.AgentSequence) > 1
	if len(p.AgentSequence) > 0 {
		p.PrimaryAgent = p.AgentSequence[0]
	} else {
		p.PrimaryAgent = DefaultAgentID
	}

	p.Strategy = selectStrategy(p)
	p.ContextFusion = b.selectFusion(p)
	return p
}

// selectStrategy picks the strategy label in fixed precedence order.
// The parallel label is descriptive: tools still run one at a time.
func selectStrategy(p *models.ExecutionPlan) models.Strategy {
	switch {
	case p.RequiresMultiAgent:
		return models.StrategyMultiAgentSequential
	case len(p.Components) > 2:
		return models.StrategyHierarchical
	case len(p.ToolsNeeded) > 1:
		return models.StrategyParallel
	default:
		return models.StrategySequential
	}
}

// selectFusion picks the context-fusion mode. Persona-integrated
// storytelling wins over factual integration when both apply.
func (b *Builder) selectFusion(p *models.ExecutionPlan) models.FusionMode {
	mode := models.FusionNarrative
	for _, c := range p.Components {
		if c.Intent == models.IntentInformation {
			mode = models.FusionFactual
			break
		}
	}
	for _, id := range p.AgentSequence {
		if profile, ok := b.registry.Get(id); ok && profile.HasCapability(models.CapabilityPersona) {
			return models.FusionPersonaStorytelling
		}
	}
	return mode
}

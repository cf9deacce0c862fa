// Package decompose turns a request plus its extracted signals into an
// ordered list of typed query components. Multi-agent pattern matching
// runs first and, when it fires, replaces the single-agent path entirely;
// tool and knowledge components are appended regardless of which path ran.
package decompose

import (
	"strings"

	"github.com/denisogg/langgraph-ma/internal/registry"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

// KnowledgeChecker reports whether a knowledge source exists. Hints that
// fail the check are dropped rather than producing dead components.
type KnowledgeChecker interface {
	Has(name string) bool
}

// hintTools maps each tool trigger word to the tool that serves it. Every
// current trigger routes to web search; the indirection leaves room for a
// dedicated weather or pricing tool later.
var hintTools = map[string]string{
	"today":   "websearch",
	"current": "websearch",
	"weather": "websearch",
	"news":    "websearch",
	"price":   "websearch",
	"latest":  "websearch",
	"recent":  "websearch",
	"now":     "websearch",
}

// Decomposer maps requests to components using the agent registry and
// knowledge catalog. Stateless between calls.
type Decomposer struct {
	registry  *registry.Registry
	knowledge KnowledgeChecker
}

// New creates a Decomposer. knowledge may be nil when no catalog is
// configured; knowledge hints are then ignored.
func New(reg *registry.Registry, knowledge KnowledgeChecker) *Decomposer {
	return &Decomposer{registry: reg, knowledge: knowledge}
}

// Decompose produces the ordered component list for a request. Agent
// components carry priority 1 and up; tool and knowledge components carry
// priority 0 so they schedule first. The same inputs always yield the
// same components.
func (d *Decomposer) Decompose(text string, entities models.Entities, intents []models.Intent) []models.QueryComponent {
	lower := strings.ToLower(text)

	components := d.matchMultiAgent(lower, entities)
	if components == nil {
		components = []models.QueryComponent{d.singleAgent(lower, entities, intents)}
	}

	components = append(components, d.toolComponents(entities, intents)...)
	if kb, ok := d.knowledgebaseComponent(entities, intents); ok {
		components = append(components, kb)
	}
	components = append(components, d.knowledgeComponents(entities, intents)...)
	return components
}

// knowledgebaseComponent schedules the knowledgebase tool when a how-to or
// recipe ask names a cataloged source. The tool answers the specific
// question; the knowledge component alongside it injects the raw document.
func (d *Decomposer) knowledgebaseComponent(entities models.Entities, intents []models.Intent) (models.QueryComponent, bool) {
	if !hasIntent(intents, models.IntentRecipe) && !hasIntent(intents, models.IntentGuidance) {
		return models.QueryComponent{}, false
	}
	for _, name := range entities[models.EntityKnowledgeHints] {
		if d.knowledge == nil || !d.knowledge.Has(name) {
			continue
		}
		return models.QueryComponent{
			Text:         "stored knowledge query: " + name,
			Intent:       toolIntent(intents),
			Entities:     entities,
			ResourceType: models.ResourceTool,
			ResourceID:   "knowledgebase",
			Priority:     0,
		}, true
	}
	return models.QueryComponent{}, false
}

// singleAgent resolves the primary component via the fixed intent policy,
// falling back to weighted scoring when no intent rule applies.
func (d *Decomposer) singleAgent(lower string, entities models.Entities, intents []models.Intent) models.QueryComponent {
	if hasIntent(intents, models.IntentHumor) {
		if agent, ok := d.registry.ByCapability(models.CapabilityHumor); ok {
			return agentComponent(agent.ID, "humorous response", models.IntentHumor, entities, 1, nil)
		}
	}

	if hasIntent(intents, models.IntentRecipe) {
		if agent, ok := d.recipeAgent(); ok {
			return agentComponent(agent.ID, "recipe guidance", models.IntentRecipe, entities, 1, nil)
		}
	}

	if hasIntent(intents, models.IntentStorytelling) {
		if agent, ok := d.personaFromHints(entities); ok {
			return agentComponent(agent.ID, "persona storytelling", models.IntentStorytelling, entities, 1, nil)
		}
		if agent, ok := d.registry.ByCapability(models.CapabilityNarrative); ok {
			return agentComponent(agent.ID, "narrative response", models.IntentStorytelling, entities, 1, nil)
		}
	}

	if agent, ok := d.bestAgent(lower, entities, intents); ok {
		intent := models.IntentGeneral
		if len(intents) > 0 {
			intent = intents[0]
		}
		return agentComponent(agent.ID, "general response", intent, entities, 1, nil)
	}

	// Empty registry; route to a fixed default so the plan still builds.
	return agentComponent(DefaultAgentID, "general response", models.IntentGeneral, entities, 1, nil)
}

// recipeAgent prefers an agent whose keywords cover cooking and whose
// contexts carry a cultural hint, then any recipe-capable agent.
func (d *Decomposer) recipeAgent() (*models.AgentProfile, bool) {
	for _, profile := range d.registry.Profiles() {
		if overlaps(profile.Keywords, recipeWords) && overlaps(profile.Contexts, culturalWords) {
			return profile, true
		}
	}
	return d.registry.ByCapability(models.CapabilityRecipe)
}

// personaFromHints returns the first hinted agent that is persona-capable.
func (d *Decomposer) personaFromHints(entities models.Entities) (*models.AgentProfile, bool) {
	for _, id := range entities[models.EntityAgentHints] {
		if profile, ok := d.registry.Get(id); ok && profile.HasCapability(models.CapabilityPersona) {
			return profile, true
		}
	}
	return nil, false
}

// toolComponents appends one priority-0 tool component per distinct tool
// implied by the request's tool hints.
func (d *Decomposer) toolComponents(entities models.Entities, intents []models.Intent) []models.QueryComponent {
	var components []models.QueryComponent
	seen := map[string]bool{}
	for _, hint := range entities[models.EntityToolHints] {
		tool, ok := hintTools[hint]
		if !ok {
			continue
		}
		if seen[tool] {
			continue
		}
		seen[tool] = true
		components = append(components, models.QueryComponent{
			Text:         "live information: " + hint,
			Intent:       toolIntent(intents),
			Entities:     entities,
			ResourceType: models.ResourceTool,
			ResourceID:   tool,
			Priority:     0,
		})
	}
	return components
}

// knowledgeComponents appends one priority-0 knowledge component per
// distinct hinted source present in the catalog.
func (d *Decomposer) knowledgeComponents(entities models.Entities, intents []models.Intent) []models.QueryComponent {
	var components []models.QueryComponent
	seen := map[string]bool{}
	for _, name := range entities[models.EntityKnowledgeHints] {
		if seen[name] {
			continue
		}
		if d.knowledge == nil || !d.knowledge.Has(name) {
			continue
		}
		seen[name] = true
		components = append(components, models.QueryComponent{
			Text:         "stored knowledge: " + name,
			Intent:       toolIntent(intents),
			Entities:     entities,
			ResourceType: models.ResourceKnowledge,
			ResourceID:   name,
			Priority:     0,
		})
	}
	return components
}

// toolIntent picks the intent carried by tool and knowledge components.
func toolIntent(intents []models.Intent) models.Intent {
	for _, intent := range intents {
		switch intent {
		case models.IntentWeather, models.IntentCurrentEvents, models.IntentInformation:
			return intent
		}
	}
	return models.IntentInformation
}

func agentComponent(id, label string, intent models.Intent, entities models.Entities, priority int, deps []string) models.QueryComponent {
	return models.QueryComponent{
		Text:         label,
		Intent:       intent,
		Entities:     entities,
		ResourceType: models.ResourceAgent,
		ResourceID:   id,
		Priority:     priority,
		Dependencies: deps,
	}
}

func hasIntent(intents []models.Intent, want models.Intent) bool {
	for _, intent := range intents {
		if intent == want {
			return true
		}
	}
	return false
}

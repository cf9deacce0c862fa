// Package models defines the core data types shared across the supervisor.
package models

// ResourceType identifies the kind of resource a query component maps to.
type ResourceType string

const (
	// ResourceAgent routes the component to a response agent.
	ResourceAgent ResourceType = "agent"
	// ResourceTool routes the component to an information tool.
	ResourceTool ResourceType = "tool"
	// ResourceKnowledge routes the component to a stored knowledge source.
	ResourceKnowledge ResourceType = "knowledge"
	// ResourceContext marks a component that only carries conversational context.
	ResourceContext ResourceType = "context"
)

// Valid returns true if the resource type is a known value.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceAgent, ResourceTool, ResourceKnowledge, ResourceContext:
		return true
	default:
		return false
	}
}

// Intent is a request intent tag drawn from a fixed vocabulary.
type Intent string

const (
	IntentHumor         Intent = "humor"
	IntentRecipe        Intent = "recipe"
	IntentStorytelling  Intent = "storytelling"
	IntentInformation   Intent = "information"
	IntentWeather       Intent = "weather"
	IntentGuidance      Intent = "guidance"
	IntentCurrentEvents Intent = "current_events"
	IntentCultural      Intent = "cultural"
	IntentPersonal      Intent = "personal"
	// IntentGeneral is assigned when no stronger intent matched.
	IntentGeneral Intent = "general"
)

// KnownIntents lists every intent the extractor can detect, in match order.
var KnownIntents = []Intent{
	IntentHumor,
	IntentRecipe,
	IntentStorytelling,
	IntentInformation,
	IntentWeather,
	IntentGuidance,
	IntentCurrentEvents,
	IntentCultural,
	IntentPersonal,
}

// Entity categories used by the extractor.
const (
	EntityLocations      = "locations"
	EntityDates          = "dates"
	EntityPeople         = "people"
	EntityOrganizations  = "organizations"
	EntityKeyConcepts    = "key_concepts"
	EntityAgentHints     = "agent_hints"
	EntityKnowledgeHints = "knowledge_hints"
	EntityToolHints      = "tool_hints"
)

// Entities maps an entity category to an ordered list of unique values.
// Derived fresh per request and never persisted.
type Entities map[string][]string

// Add appends a value to a category, skipping duplicates within it.
func (e Entities) Add(category, value string) {
	for _, existing := range e[category] {
		if existing == value {
			return
		}
	}
	e[category] = append(e[category], value)
}

// Has reports whether the category already contains the value.
func (e Entities) Has(category, value string) bool {
	for _, existing := range e[category] {
		if existing == value {
			return true
		}
	}
	return false
}

// QueryComponent is one decomposed, typed piece of a request mapped to
// exactly one resource. Components are immutable once produced by the
// decomposer.
type QueryComponent struct {
	// Text is a short label describing what this component covers.
	Text string `json:"text"`
	// Intent is the intent assigned to this component.
	Intent Intent `json:"intent"`
	// Entities carries the request-level entity signals.
	Entities Entities `json:"entities,omitempty"`
	// ResourceType identifies the kind of resource this maps to.
	ResourceType ResourceType `json:"resource_type"`
	// ResourceID names the agent, tool, or knowledge source.
	ResourceID string `json:"resource_id"`
	// Priority orders execution; 0 schedules before agents, 1 is the
	// highest agent priority.
	Priority int `json:"priority"`
	// Dependencies lists resource IDs that must produce output first.
	Dependencies []string `json:"dependencies,omitempty"`
}

package models

// Capability names an area an agent is declared competent in. Capabilities
// drive role selection in multi-agent routing and intent fallbacks.
type Capability string

const (
	// CapabilityHumor marks agents that write jokes and parody.
	CapabilityHumor Capability = "humor"
	// CapabilityPersona marks agents that answer in a fixed persona voice.
	CapabilityPersona Capability = "persona"
	// CapabilityNarrative marks general creative-writing agents.
	CapabilityNarrative Capability = "narrative"
	// CapabilityRecipe marks agents that give cooking guidance.
	CapabilityRecipe Capability = "recipe"
	// CapabilityResearch marks agents that analyze and summarize facts.
	CapabilityResearch Capability = "research"
	// CapabilityContent marks agents that produce polished written content.
	CapabilityContent Capability = "content"
)

// AgentProfile describes one registered response agent. Profiles are loaded
// once at startup, are long-lived for the process, and are only read during
// scoring; requests never mutate them.
type AgentProfile struct {
	// ID is the agent's resource identifier.
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable agent name.
	Name string `json:"name" yaml:"name"`
	// Description summarizes what the agent does.
	Description string `json:"description" yaml:"description"`
	// Keywords are request words that hint at this agent.
	Keywords []string `json:"keywords" yaml:"keywords"`
	// Contexts are capability keywords for context-overlap scoring.
	Contexts []string `json:"contexts" yaml:"contexts"`
	// PersonalitySummary is a short description of the agent's voice.
	PersonalitySummary string `json:"personality" yaml:"personality"`
	// Capabilities lists the roles this agent can fill.
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
}

// HasCapability reports whether the profile declares the capability.
func (p *AgentProfile) HasCapability(c Capability) bool {
	for _, have := range p.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

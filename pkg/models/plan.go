package models

// Strategy labels how an execution plan is carried out.
type Strategy string

const (
	// StrategySequential runs a small plan front to back.
	StrategySequential Strategy = "sequential"
	// StrategyParallel labels a plan needing more than one tool. The label
	// is descriptive only; tools still run one at a time.
	StrategyParallel Strategy = "parallel"
	// StrategyHierarchical labels a plan with more than two components.
	StrategyHierarchical Strategy = "hierarchical"
	// StrategyMultiAgentSequential chains several agents, each consuming
	// the previous agents' outputs.
	StrategyMultiAgentSequential Strategy = "multi_agent_sequential"
)

// Valid returns true if the strategy is a known value.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySequential, StrategyParallel, StrategyHierarchical, StrategyMultiAgentSequential:
		return true
	default:
		return false
	}
}

// FusionMode labels how tool, knowledge, and prior-agent outputs are
// blended into an agent's instructions.
type FusionMode string

const (
	// FusionNarrative weaves gathered material into a story-first answer.
	FusionNarrative FusionMode = "narrative_integration"
	// FusionFactual integrates gathered facts directly into the response.
	FusionFactual FusionMode = "factual_integration"
	// FusionPersonaStorytelling answers in a persona voice while folding
	// in gathered material. Takes precedence over factual integration.
	FusionPersonaStorytelling FusionMode = "persona_integrated_storytelling"
)

// Valid returns true if the fusion mode is a known value.
func (m FusionMode) Valid() bool {
	switch m {
	case FusionNarrative, FusionFactual, FusionPersonaStorytelling:
		return true
	default:
		return false
	}
}

// ExecutionPlan is the ordered, strategy-tagged program derived from the
// components of a single request. Built once, read-only during execution,
// and discarded after the response is produced.
type ExecutionPlan struct {
	// Components are sorted by priority ascending (tools and knowledge
	// before agents).
	Components []QueryComponent `json:"components"`
	// Strategy labels the execution style.
	Strategy Strategy `json:"strategy"`
	// PrimaryAgent is the first agent in the sequence, or the default
	// agent if no agent component was produced.
	PrimaryAgent string `json:"primary_agent"`
	// ToolsNeeded lists distinct tool resource IDs, in first-seen order.
	ToolsNeeded []string `json:"tools_needed"`
	// KnowledgeNeeded lists distinct knowledge source keys, in first-seen order.
	KnowledgeNeeded []string `json:"knowledge_needed"`
	// ContextFusion labels how outputs are blended into instructions.
	ContextFusion FusionMode `json:"context_fusion"`
	// AgentSequence is the ordered list of agent resource IDs.
	AgentSequence []string `json:"agent_sequence"`
	// RequiresMultiAgent is true iff the sequence has more than one agent.
	RequiresMultiAgent bool `json:"requires_multi_agent"`
}

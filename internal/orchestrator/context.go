package orchestrator

import (
	"fmt"
	"strings"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// priorOutputLimit caps each prior agent output included in a later
// agent's context, bounding prompt growth across long sequences.
const priorOutputLimit = 500

// buildContext assembles one agent's input context. The first agent gets
// the request, conversation history, and tool and knowledge outputs; each
// later agent additionally gets every previous agent's fenced output and
// an instruction not to impersonate the others.
func (o *Orchestrator) buildContext(p *models.ExecutionPlan, report *Report, request string, history []string, position int) string {
	agentID := p.AgentSequence[position]
	var b strings.Builder

	fmt.Fprintf(&b, "Original request: %s\n", request)

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, line := range history {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	if len(report.ToolOutputs) > 0 {
		b.WriteString("\nTool results:\n")
		for _, name := range p.ToolsNeeded {
			out, ok := report.ToolOutputs[name]
			if !ok || out.Skipped {
				continue
			}
			fmt.Fprintf(&b, "[%s] (query: %s)\n%s\n", name, out.QueryUsed, out.Result)
		}
	}

	if len(report.KnowledgeOutputs) > 0 {
		b.WriteString("\nStored knowledge:\n")
		for _, name := range p.KnowledgeNeeded {
			fmt.Fprintf(&b, "[%s]\n%s\n", name, report.KnowledgeOutputs[name])
		}
	}

	if position > 0 {
		b.WriteString("\nPrevious agent results:\n")
		for _, prev := range p.AgentSequence[:position] {
			output, ok := report.AgentOutputs[prev]
			if !ok {
				continue
			}
			// Truncate on a rune boundary so multi-byte text stays valid.
			if runes := []rune(output); len(runes) > priorOutputLimit {
				output = string(runes[:priorOutputLimit]) + "... [truncated]"
			}
			fence := strings.ToUpper(prev)
			fmt.Fprintf(&b, "--- %s OUTPUT ---\n%s\n--- END %s OUTPUT ---\n", fence, output, fence)
		}
	}

	if position == 0 {
		fmt.Fprintf(&b, "\nInstructions: You are %s in this workflow. %s\n", agentID, fusionInstructions(p.ContextFusion))
		fmt.Fprintf(&b, "\nIMPORTANT: Only provide YOUR OWN response as %s. Do not generate responses for other agents in the sequence.", agentID)
	} else {
		fmt.Fprintf(&b, "\nInstructions: You are %s (agent %d of %d). %s\n", agentID, position+1, len(p.AgentSequence), fusionInstructions(p.ContextFusion))
		fmt.Fprintf(&b, "\nIMPORTANT: Only provide YOUR OWN response as %s. Do not repeat or simulate responses from other agents. Build upon the previous work but respond only as yourself.", agentID)
	}

	return b.String()
}

// fusionInstructions renders the role instruction for a fusion mode.
func fusionInstructions(mode models.FusionMode) string {
	switch mode {
	case models.FusionFactual:
		return "Integrate the gathered facts accurately. Keep figures and sources intact and clearly separate what is known from what you infer."
	case models.FusionPersonaStorytelling:
		return "Stay fully in character. Retell the gathered information as a personal story in your own voice, keeping the facts correct inside the narrative."
	default:
		return "Weave the available information into a single flowing response that answers the request directly."
	}
}

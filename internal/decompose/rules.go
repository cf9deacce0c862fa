package decompose

import (
	"strings"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// DefaultAgentID receives requests no other routing could place.
const DefaultAgentID = "story_creator"

// role names one side of a multi-agent pattern and knows how to pick the
// agent that plays it.
type role struct {
	// label becomes the component text.
	label string
	// intent tags the produced component.
	intent models.Intent
	// capability selects the agent; hinted agents with the capability
	// win over first-registered ones.
	capability models.Capability
}

// multiAgentRule is one entry in the ordered pattern table. Both word
// lists must match the lowercase text for the rule to fire; the second
// component always depends on the first.
type multiAgentRule struct {
	firstWords  []string
	secondWords []string
	first       role
	second      role
}

var (
	analysisWords = []string{"analysis", "analyze", "analyse"}
	researchWords = []string{"research", "find out", "look up", "investigate"}
	weatherWords  = []string{"weather", "forecast", "temperature"}
	techWords     = []string{"technical", "how does", "how do", "mechanism"}
	dataWords     = []string{"data", "statistics", "numbers", "figures"}

	personaWords = []string{"granny", "grandma", "persona", "in her voice", "tell me about it", "comment on"}
	contentWords = []string{"story", "write", "article", "blog", "post", "create", "make it into", "turn it into", "joke"}
	storyWords   = []string{"story", "tale", "storytelling", "narrate"}

	recipeWords   = []string{"recipe", "cook", "cooking", "bake", "dish", "meal", "food"}
	culturalWords = []string{"cultural", "culture", "heritage", "tradition", "family"}
)

var (
	researchRole = role{label: "research and analysis", intent: models.IntentInformation, capability: models.CapabilityResearch}
	personaRole  = role{label: "persona commentary", intent: models.IntentPersonal, capability: models.CapabilityPersona}
	contentRole  = role{label: "content creation", intent: models.IntentStorytelling, capability: models.CapabilityContent}
	storyRole    = role{label: "storytelling", intent: models.IntentStorytelling, capability: models.CapabilityNarrative}
)

// multiAgentRules is evaluated in order; the first matching rule wins.
// New sequences are added here, not in control flow.
var multiAgentRules = []multiAgentRule{
	{firstWords: analysisWords, secondWords: personaWords, first: researchRole, second: personaRole},
	{firstWords: researchWords, secondWords: personaWords, first: researchRole, second: personaRole},
	{firstWords: weatherWords, secondWords: personaWords, first: researchRole, second: personaRole},
	{firstWords: techWords, secondWords: contentWords, first: researchRole, second: contentRole},
	{firstWords: researchWords, secondWords: contentWords, first: researchRole, second: contentRole},
	{firstWords: dataWords, secondWords: storyWords, first: researchRole, second: storyRole},
}

// matchMultiAgent checks the pattern table against the lowercase text and,
// on a match, produces the two ordered agent components. Returns nil when
// no rule fires or when both roles would resolve to the same agent.
func (d *Decomposer) matchMultiAgent(lower string, entities models.Entities) []models.QueryComponent {
	for _, rule := range multiAgentRules {
		if !containsAny(lower, rule.firstWords) || !containsAny(lower, rule.secondWords) {
			continue
		}

		first, ok := d.selectForRole(rule.first, entities)
		if !ok {
			continue
		}
		second, ok := d.selectForRole(rule.second, entities)
		if !ok || second.ID == first.ID {
			continue
		}

		return []models.QueryComponent{
			agentComponent(first.ID, rule.first.label, rule.first.intent, entities, 1, nil),
			agentComponent(second.ID, rule.second.label, rule.second.intent, entities, 2, []string{first.ID}),
		}
	}
	return nil
}

// selectForRole resolves a role to an agent, preferring explicitly hinted
// agents carrying the role's capability.
func (d *Decomposer) selectForRole(r role, entities models.Entities) (*models.AgentProfile, bool) {
	for _, id := range entities[models.EntityAgentHints] {
		if profile, ok := d.registry.Get(id); ok && profile.HasCapability(r.capability) {
			return profile, true
		}
	}
	return d.registry.ByCapability(r.capability)
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// overlaps reports whether any entry of a intersects b, case-insensitively
// and allowing substring matches within multi-word entries.
func overlaps(a, b []string) bool {
	for _, x := range a {
		lx := strings.ToLower(x)
		for _, y := range b {
			if strings.Contains(lx, y) || strings.Contains(y, lx) {
				return true
			}
		}
	}
	return false
}

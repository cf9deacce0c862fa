package decompose

import (
	"strings"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// Scoring weights for the agent selection fallback.
const (
	keywordWeight = 2.0
	contextWeight = 1.5
	hintWeight    = 5.0
	intentBonus   = 10.0
)

// intentDomains maps an intent to the keyword vocabulary of its domain.
// An agent whose declared keywords intersect the domain of a detected
// intent earns the intent bonus.
var intentDomains = map[models.Intent][]string{
	models.IntentHumor:        {"funny", "joke", "parody", "humor", "comedy"},
	models.IntentRecipe:       {"recipe", "cook", "bake", "food", "dish"},
	models.IntentStorytelling: {"story", "tale", "narrative", "write", "creative"},
	models.IntentInformation:  {"research", "analysis", "information", "facts", "explain", "data"},
	models.IntentCultural:     {"tradition", "culture", "heritage", "wisdom"},
	models.IntentGuidance:     {"advice", "guide", "wisdom", "recommend"},
}

// bestAgent scores every registered agent against the request and returns
// the winner. Ties resolve to the first-registered agent because Profiles
// preserves registration order and later agents must strictly exceed the
// best score to displace it.
func (d *Decomposer) bestAgent(lower string, entities models.Entities, intents []models.Intent) (*models.AgentProfile, bool) {
	var best *models.AgentProfile
	bestScore := 0.0

	for _, profile := range d.registry.Profiles() {
		score := scoreAgent(profile, lower, entities, intents)
		if best == nil || score > bestScore {
			best = profile
			bestScore = score
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// scoreAgent computes one agent's weighted relevance to the request.
func scoreAgent(profile *models.AgentProfile, lower string, entities models.Entities, intents []models.Intent) float64 {
	score := 0.0

	for _, kw := range profile.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			score += keywordWeight
		}
	}

	for _, ctx := range profile.Contexts {
		for _, word := range strings.Fields(strings.ToLower(ctx)) {
			if strings.Contains(lower, word) {
				score += contextWeight
				break
			}
		}
	}

	if entities.Has(models.EntityAgentHints, profile.ID) {
		score += hintWeight
	}

	for _, intent := range intents {
		if overlaps(profile.Keywords, intentDomains[intent]) {
			score += intentBonus
			break
		}
	}

	return score
}

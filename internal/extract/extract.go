// Package extract derives entities and intent tags from raw request text.
// Extraction is a pure analysis step: it reads registry and knowledge
// metadata but never mutates shared state, so one Extractor is safe for
// concurrent use.
package extract

import (
	"sort"
	"strings"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// Recognizer produces base entities (locations, dates, people,
// organizations, key concepts) from raw text. Implementations may wrap an
// external NER service; when one fails, extraction degrades to the
// built-in HeuristicRecognizer rather than failing the request.
type Recognizer interface {
	Recognize(text string) (models.Entities, error)
}

// AgentHinter exposes per-agent trigger keywords for hint augmentation.
type AgentHinter interface {
	AgentKeywords() map[string][]string
}

// KnowledgeHinter exposes the names of available knowledge sources.
type KnowledgeHinter interface {
	SourceNames() []string
}

// toolTriggers is the fixed vocabulary whose presence suggests the request
// needs live external information.
var toolTriggers = []string{"today", "current", "weather", "news", "price", "latest", "recent", "now"}

// intentKeywords maps each known intent to the trigger words that mark it.
// Matching is substring-based against the lowercased request.
var intentKeywords = map[models.Intent][]string{
	models.IntentHumor:         {"funny", "joke", "parody", "hilarious", "amusing", "comedy", "laugh", "humor"},
	models.IntentRecipe:        {"recipe", "cook", "bake", "ingredient", "dish", "meal", "food"},
	models.IntentStorytelling:  {"story", "tale", "narrative", "once upon"},
	models.IntentInformation:   {"analysis", "analyze", "explain", "information", "research", "facts", "details", "tell me about"},
	models.IntentWeather:       {"weather", "temperature", "forecast", "rain", "sunny", "climate"},
	models.IntentGuidance:      {"advice", "help me", "how to", "guide", "recommend", "suggest"},
	models.IntentCurrentEvents: {"news", "latest", "current", "recent", "today", "happening"},
	models.IntentCultural:      {"tradition", "culture", "cultural", "heritage", "folklore", "custom"},
	models.IntentPersonal:      {"my grandma", "my family", "personal", "my life", "for me"},
}

// Extractor runs entity recognition, augments the result with hints bound
// to the configured agents and knowledge sources, and tags intents.
type Extractor struct {
	recognizer Recognizer
	agents     AgentHinter
	knowledge  KnowledgeHinter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRecognizer replaces the built-in heuristic recognizer.
func WithRecognizer(r Recognizer) Option {
	return func(e *Extractor) {
		e.recognizer = r
	}
}

// WithKnowledge wires a knowledge catalog for knowledge_hints augmentation.
func WithKnowledge(k KnowledgeHinter) Option {
	return func(e *Extractor) {
		e.knowledge = k
	}
}

// New creates an Extractor bound to the given agent catalog.
func New(agents AgentHinter, opts ...Option) *Extractor {
	e := &Extractor{
		recognizer: HeuristicRecognizer{},
		agents:     agents,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the entities and intent tags for a request. Entities
// include the recognizer's base categories plus agent_hints,
// knowledge_hints, and tool_hints derived from the configured catalogs.
// Intents are ordered by models.KnownIntents; a request matching nothing
// gets the single tag "general".
func (e *Extractor) Extract(text string) (models.Entities, []models.Intent) {
	entities, err := e.recognizer.Recognize(text)
	if err != nil {
		entities, _ = HeuristicRecognizer{}.Recognize(text)
	}
	if entities == nil {
		entities = models.Entities{}
	}
	lower := strings.ToLower(text)

	if e.agents != nil {
		keywords := e.agents.AgentKeywords()
		// Sorted so hint order is stable across runs.
		ids := make([]string, 0, len(keywords))
		for id := range keywords {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, agentID := range ids {
			for _, kw := range keywords[agentID] {
				if strings.Contains(lower, strings.ToLower(kw)) {
					entities.Add(models.EntityAgentHints, agentID)
					break
				}
			}
		}
	}

	if e.knowledge != nil {
		for _, name := range e.knowledge.SourceNames() {
			if matchesSourceName(lower, name) {
				entities.Add(models.EntityKnowledgeHints, name)
			}
		}
	}

	for _, trigger := range toolTriggers {
		if containsWord(lower, trigger) {
			entities.Add(models.EntityToolHints, trigger)
		}
	}

	return entities, detectIntents(lower)
}

// detectIntents tags every intent whose keywords appear in the lowercased
// text, falling back to general when nothing matched.
func detectIntents(lower string) []models.Intent {
	var intents []models.Intent
	for _, intent := range models.KnownIntents {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lower, kw) {
				intents = append(intents, intent)
				break
			}
		}
	}
	if len(intents) == 0 {
		intents = []models.Intent{models.IntentGeneral}
	}
	return intents
}

// matchesSourceName matches a knowledge source name against the text,
// treating underscores in the name as spaces.
func matchesSourceName(lower, name string) bool {
	n := strings.ToLower(name)
	if strings.Contains(lower, n) {
		return true
	}
	return strings.Contains(lower, strings.ReplaceAll(n, "_", " "))
}

// containsWord reports whether lower contains w as a whole word.
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

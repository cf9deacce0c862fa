package extract

import (
	"errors"
	"testing"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

type failingRecognizer struct{}

func (failingRecognizer) Recognize(string) (models.Entities, error) {
	return nil, errors.New("ner backend unavailable")
}

type fakeAgents struct {
	keywords map[string][]string
}

func (f fakeAgents) AgentKeywords() map[string][]string { return f.keywords }

type fakeKnowledge struct {
	names []string
}

func (f fakeKnowledge) SourceNames() []string { return f.names }

func testAgents() fakeAgents {
	return fakeAgents{keywords: map[string][]string{
		"granny":         {"granny", "grandma", "recipe"},
		"parody_creator": {"funny", "joke", "parody"},
		"researcher":     {"research", "analysis", "information"},
	}}
}

func TestExtractIntents(t *testing.T) {
	e := New(testAgents())

	tests := []struct {
		text string
		want []models.Intent
	}{
		{"tell me a funny story about dragons", []models.Intent{models.IntentHumor, models.IntentStorytelling}},
		{"what is the weather in Paris today", []models.Intent{models.IntentWeather, models.IntentCurrentEvents}},
		{"share a recipe for moussaka", []models.Intent{models.IntentRecipe}},
		{"hello there", []models.Intent{models.IntentGeneral}},
	}
	for _, tt := range tests {
		_, intents := e.Extract(tt.text)
		if len(intents) != len(tt.want) {
			t.Errorf("Extract(%q) intents = %v, want %v", tt.text, intents, tt.want)
			continue
		}
		for i := range intents {
			if intents[i] != tt.want[i] {
				t.Errorf("Extract(%q) intents = %v, want %v", tt.text, intents, tt.want)
				break
			}
		}
	}
}

func TestExtractLocations(t *testing.T) {
	e := New(testAgents())
	entities, _ := e.Extract("what's the weather in Paris today")
	if !entities.Has(models.EntityLocations, "Paris") {
		t.Errorf("Expected Paris in locations, got %v", entities[models.EntityLocations])
	}
	if !entities.Has(models.EntityDates, "today") {
		t.Errorf("Expected today in dates, got %v", entities[models.EntityDates])
	}
}

func TestExtractAgentHints(t *testing.T) {
	e := New(testAgents())
	entities, _ := e.Extract("let granny tell me about it")
	if !entities.Has(models.EntityAgentHints, "granny") {
		t.Errorf("Expected granny agent hint, got %v", entities[models.EntityAgentHints])
	}
	if entities.Has(models.EntityAgentHints, "parody_creator") {
		t.Error("Did not expect parody_creator hint")
	}
}

func TestExtractToolHints(t *testing.T) {
	e := New(testAgents())

	entities, _ := e.Extract("what's the weather in Paris today")
	hints := entities[models.EntityToolHints]
	if len(hints) == 0 {
		t.Fatal("Expected tool hints for a live-information request")
	}

	entities, _ = e.Extract("tell me a story about dragons")
	if len(entities[models.EntityToolHints]) != 0 {
		t.Errorf("Expected no tool hints, got %v", entities[models.EntityToolHints])
	}
}

func TestExtractKnowledgeHints(t *testing.T) {
	e := New(testAgents(), WithKnowledge(fakeKnowledge{names: []string{"halkidiki_guide"}}))
	entities, _ := e.Extract("tell me about the halkidiki guide beaches")
	if !entities.Has(models.EntityKnowledgeHints, "halkidiki_guide") {
		t.Errorf("Expected halkidiki_guide knowledge hint, got %v", entities[models.EntityKnowledgeHints])
	}
}

func TestRecognizerErrorFallsBackToHeuristic(t *testing.T) {
	e := New(testAgents(), WithRecognizer(failingRecognizer{}))

	entities, intents := e.Extract("what's the weather in Paris today")

	// Base entities come from the heuristic pass, not an empty set.
	if !entities.Has(models.EntityLocations, "Paris") {
		t.Errorf("Expected heuristic location, got %v", entities[models.EntityLocations])
	}
	if len(entities[models.EntityToolHints]) == 0 {
		t.Error("Hint augmentation must still run after recognizer failure")
	}
	if len(intents) == 0 || intents[0] != models.IntentWeather {
		t.Errorf("Intents = %v, want weather first", intents)
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := New(testAgents())
	text := "what's the weather in Paris today and can you make it into a joke"

	first, firstIntents := e.Extract(text)
	second, secondIntents := e.Extract(text)

	if len(first) != len(second) {
		t.Fatalf("Entity categories differ across runs: %d vs %d", len(first), len(second))
	}
	for cat, vals := range first {
		other := second[cat]
		if len(vals) != len(other) {
			t.Errorf("Category %s differs: %v vs %v", cat, vals, other)
			continue
		}
		for i := range vals {
			if vals[i] != other[i] {
				t.Errorf("Category %s order differs: %v vs %v", cat, vals, other)
				break
			}
		}
	}
	if len(firstIntents) != len(secondIntents) {
		t.Errorf("Intents differ across runs: %v vs %v", firstIntents, secondIntents)
	}
}

func TestHeuristicRecognizerKeyConcepts(t *testing.T) {
	entities, err := HeuristicRecognizer{}.Recognize("make me an analysis about climate patterns")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !entities.Has(models.EntityKeyConcepts, "analysis") {
		t.Errorf("Expected analysis in key concepts, got %v", entities[models.EntityKeyConcepts])
	}
	if !entities.Has(models.EntityKeyConcepts, "patterns") {
		t.Errorf("Expected patterns in key concepts, got %v", entities[models.EntityKeyConcepts])
	}
}

package models

import "testing"

func TestResourceTypeValid(t *testing.T) {
	valid := []ResourceType{ResourceAgent, ResourceTool, ResourceKnowledge, ResourceContext}
	for _, rt := range valid {
		if !rt.Valid() {
			t.Errorf("%q should be valid", rt)
		}
	}
	if ResourceType("plugin").Valid() {
		t.Error("unknown resource type should be invalid")
	}
}

func TestStrategyValid(t *testing.T) {
	valid := []Strategy{StrategySequential, StrategyParallel, StrategyHierarchical, StrategyMultiAgentSequential}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Strategy("speculative").Valid() {
		t.Error("unknown strategy should be invalid")
	}
}

func TestFusionModeValid(t *testing.T) {
	valid := []FusionMode{FusionNarrative, FusionFactual, FusionPersonaStorytelling}
	for _, m := range valid {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if FusionMode("blend").Valid() {
		t.Error("unknown fusion mode should be invalid")
	}
}

func TestEntitiesAddDeduplicates(t *testing.T) {
	e := Entities{}
	e.Add(EntityLocations, "paris")
	e.Add(EntityLocations, "halkidiki")
	e.Add(EntityLocations, "paris")

	if len(e[EntityLocations]) != 2 {
		t.Errorf("Expected 2 locations, got %d", len(e[EntityLocations]))
	}
	if e[EntityLocations][0] != "paris" || e[EntityLocations][1] != "halkidiki" {
		t.Errorf("Add should preserve first-seen order, got %v", e[EntityLocations])
	}
	if !e.Has(EntityLocations, "halkidiki") {
		t.Error("Has should find an added value")
	}
	if e.Has(EntityDates, "today") {
		t.Error("Has should not find values in empty categories")
	}
}

func TestAgentProfileHasCapability(t *testing.T) {
	p := &AgentProfile{
		ID:           "granny",
		Capabilities: []Capability{CapabilityPersona, CapabilityRecipe},
	}
	if !p.HasCapability(CapabilityPersona) {
		t.Error("Expected persona capability")
	}
	if p.HasCapability(CapabilityHumor) {
		t.Error("Did not expect humor capability")
	}
}

func TestPreferenceProfileDefaults(t *testing.T) {
	p := NewPreferenceProfile()
	if got := p.PreferenceScore("websearch"); got != 0.5 {
		t.Errorf("Default preference = %v, want 0.5", got)
	}
	p.PreferredTools["websearch"] = 0.8
	if got := p.PreferenceScore("websearch"); got != 0.8 {
		t.Errorf("Preference = %v, want 0.8", got)
	}
}

func TestRememberQueryBounded(t *testing.T) {
	p := NewPreferenceProfile()
	for i := 0; i < MaxQueryPatterns+3; i++ {
		p.RememberQuery("websearch", string(rune('a'+i)))
	}

	patterns := p.QueryPatterns["websearch"]
	if len(patterns) != MaxQueryPatterns {
		t.Fatalf("Expected %d patterns, got %d", MaxQueryPatterns, len(patterns))
	}
	// Oldest entries are evicted first.
	if patterns[0] != "d" {
		t.Errorf("Expected oldest surviving pattern %q, got %q", "d", patterns[0])
	}
	if patterns[len(patterns)-1] != string(rune('a'+MaxQueryPatterns+2)) {
		t.Errorf("Newest pattern not retained: %v", patterns)
	}
}

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

func TestDefaultsRegistered(t *testing.T) {
	r := New()

	ids := r.IDs()
	want := []string{"granny", "story_creator", "parody_creator", "researcher"}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d default agents, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}

	if _, ok := r.Get("granny"); !ok {
		t.Error("Expected granny in default registry")
	}
	if _, ok := r.Get("unknown"); ok {
		t.Error("Did not expect unknown agent")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	err := r.Register(&models.AgentProfile{
		ID:       "granny",
		Name:     "Other Granny",
		Keywords: []string{"granny"},
	})
	if err == nil {
		t.Error("Expected error registering duplicate agent ID")
	}
}

func TestRegisterValidatesProfile(t *testing.T) {
	r := New()
	cases := []*models.AgentProfile{
		nil,
		{Name: "No ID", Keywords: []string{"x"}},
		{ID: "no_name", Keywords: []string{"x"}},
		{ID: "no_keywords", Name: "No Keywords"},
	}
	for _, profile := range cases {
		if err := r.Register(profile); err == nil {
			t.Errorf("Expected validation error for profile %+v", profile)
		}
	}
}

func TestByCapabilityFirstRegistered(t *testing.T) {
	r := New()

	// Both story_creator and parody_creator carry content; story_creator
	// registered first wins.
	profile, ok := r.ByCapability(models.CapabilityContent)
	if !ok {
		t.Fatal("Expected a content-capable agent")
	}
	if profile.ID != "story_creator" {
		t.Errorf("ByCapability(content) = %q, want story_creator", profile.ID)
	}

	if _, ok := r.ByCapability(models.Capability("juggling")); ok {
		t.Error("Did not expect an agent for an unknown capability")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	content := `agents:
  - id: granny
    name: Granny
    description: Village grandmother
    keywords: [granny, recipe]
    contexts: [cooking]
    capabilities: [persona, recipe]
  - id: researcher
    name: Researcher
    keywords: [research, analysis]
    capabilities: [research, content]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "granny" || ids[1] != "researcher" {
		t.Errorf("IDs = %v, want [granny researcher]", ids)
	}

	granny, ok := r.Get("granny")
	if !ok {
		t.Fatal("Expected granny after load")
	}
	if !granny.HasCapability(models.CapabilityPersona) {
		t.Error("Expected persona capability from YAML")
	}

	keywords := r.AgentKeywords()
	if len(keywords["researcher"]) != 2 {
		t.Errorf("Expected 2 researcher keywords, got %v", keywords["researcher"])
	}
}

func TestLoadRejectsBadCatalog(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "dup.yaml")
	dup := `agents:
  - id: granny
    name: Granny
    keywords: [granny]
  - id: granny
    name: Granny Again
    keywords: [granny]
`
	if err := os.WriteFile(path, []byte(dup), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for duplicate agent IDs")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("agents: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Expected error for empty catalog")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

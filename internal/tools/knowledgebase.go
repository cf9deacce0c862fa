package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/denisogg/langgraph-ma/internal/knowledge"
)

// Knowledgebase exposes the stored knowledge catalog as a tool so plans
// can schedule lookups the same way they schedule live searches.
type Knowledgebase struct {
	catalog *knowledge.Catalog
}

// NewKnowledgebase wraps a knowledge catalog.
func NewKnowledgebase(catalog *knowledge.Catalog) *Knowledgebase {
	return &Knowledgebase{catalog: catalog}
}

// Name implements Tool.
func (k *Knowledgebase) Name() string { return "knowledgebase" }

// Invoke implements Tool. option selects the source directly; otherwise
// the first source whose name appears in the query wins, falling back to
// the first catalog entry.
func (k *Knowledgebase) Invoke(ctx context.Context, query, option string) (string, error) {
	names := k.catalog.SourceNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no knowledge sources configured")
	}

	name := option
	if name == "" {
		lower := strings.ToLower(query)
		for _, candidate := range names {
			if strings.Contains(lower, strings.ToLower(candidate)) ||
				strings.Contains(lower, strings.ToLower(strings.ReplaceAll(candidate, "_", " "))) {
				name = candidate
				break
			}
		}
	}
	if name == "" {
		name = names[0]
	}

	content, err := k.catalog.Lookup(name)
	if err != nil {
		return "", err
	}

	for _, src := range k.catalog.Sources() {
		if src.Name == name && src.Description != "" {
			return fmt.Sprintf("• %s\n%s", src.Description, content), nil
		}
	}
	return content, nil
}

// RelaxQuery implements Tool: how-to phrasing generalizes to a plain
// instructions lookup; otherwise keep the first two words.
func (k *Knowledgebase) RelaxQuery(query string) string {
	if strings.Contains(strings.ToLower(query), "how") {
		return "instructions"
	}
	words := strings.Fields(query)
	if len(words) > 2 {
		return strings.Join(words[:2], " ")
	}
	return query
}

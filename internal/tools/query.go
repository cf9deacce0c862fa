package tools

import (
	"strings"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// maxQueryWords caps generated queries for better search results.
const maxQueryWords = 5

// searchIntents maps a query prefix to the trigger words that select it,
// in priority order.
var searchIntents = []struct {
	label    string
	keywords []string
}{
	{"weather", []string{"weather", "forecast", "temperature", "climate"}},
	{"news", []string{"news", "latest", "update", "happening", "current"}},
	{"price", []string{"price", "cost", "buy", "purchase", "expensive", "cheap"}},
	{"restaurant", []string{"restaurant", "food", "eat", "dining"}},
	{"travel", []string{"travel", "visit", "trip", "vacation"}},
}

// genericConcepts never add specificity to a search query.
var genericConcepts = map[string]bool{
	"story": true, "tell": true, "about": true, "like": true,
	"would": true, "make": true, "create": true, "something": true,
}

var queryStopwords = map[string]bool{
	"i": true, "would": true, "like": true, "to": true, "can": true,
	"you": true, "please": true, "tell": true, "me": true, "about": true,
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "of": true,
	"for": true, "with": true, "what": true, "it": true, "into": true,
	"is": true, "s": true,
}

// GenerateQuery composes a short search query from the request and its
// extracted entities: an intent prefix first, then the leading location,
// a date term (today wins), filtered key concepts, and finally plain
// request words until the query is specific enough.
func GenerateQuery(text string, entities models.Entities) string {
	lower := strings.ToLower(text)
	var parts []string

	for _, intent := range searchIntents {
		if containsAnyWord(lower, intent.keywords) {
			parts = append(parts, intent.label)
			break
		}
	}

	if locations := entities[models.EntityLocations]; len(locations) > 0 {
		parts = appendUnique(parts, locations[0])
	}

	if dates := entities[models.EntityDates]; len(dates) > 0 {
		date := dates[0]
		for _, d := range dates {
			if strings.Contains(strings.ToLower(d), "today") {
				date = d
				break
			}
		}
		parts = appendUnique(parts, date)
	}

	if len(parts) < 3 {
		added := 0
		for _, concept := range entities[models.EntityKeyConcepts] {
			if genericConcepts[strings.ToLower(concept)] {
				continue
			}
			parts = appendUnique(parts, concept)
			if added++; added == 2 {
				break
			}
		}
	}

	if len(parts) < 2 {
		for _, word := range strings.Fields(text) {
			clean := strings.ToLower(strings.Trim(word, ".,!?'\""))
			if len(clean) <= 2 || queryStopwords[clean] || genericConcepts[clean] {
				continue
			}
			parts = appendUnique(parts, clean)
			if len(parts) >= 4 {
				break
			}
		}
	}

	if len(parts) > maxQueryWords {
		parts = parts[:maxQueryWords]
	}
	if len(parts) == 0 {
		words := strings.Fields(text)
		if len(words) > 3 {
			words = words[:3]
		}
		return strings.Join(words, " ")
	}
	return strings.Join(parts, " ")
}

func appendUnique(parts []string, value string) []string {
	lower := strings.ToLower(value)
	for _, p := range parts {
		if strings.ToLower(p) == lower {
			return parts
		}
	}
	return append(parts, value)
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

package extract

import (
	"strings"
	"unicode"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// locationPrepositions precede tokens that likely name a place.
var locationPrepositions = map[string]bool{
	"in": true, "at": true, "from": true, "to": true, "near": true, "around": true,
}

// dateWords is the fixed vocabulary of relative and calendar date terms.
var dateWords = map[string]bool{
	"today": true, "tomorrow": true, "yesterday": true, "tonight": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"weekend": true, "week": true, "month": true, "year": true,
}

// stopwords are excluded from key concept extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "about": true, "with": true, "that": true,
	"this": true, "what": true, "make": true, "tell": true, "from": true,
	"into": true, "can": true, "you": true, "please": true, "some": true,
	"something": true, "would": true, "could": true, "should": true,
	"there": true, "where": true, "when": true, "which": true, "have": true,
	"give": true, "want": true, "need": true, "like": true, "your": true,
}

// HeuristicRecognizer is the dependency-free entity recognizer used when
// no external NER is configured. It works on capitalization and position
// cues and prefers false negatives over false positives.
type HeuristicRecognizer struct{}

// Recognize implements Recognizer. It never fails.
func (HeuristicRecognizer) Recognize(text string) (models.Entities, error) {
	entities := models.Entities{}
	tokens := tokenize(text)

	for i, tok := range tokens {
		lower := strings.ToLower(tok)

		if dateWords[lower] {
			entities.Add(models.EntityDates, lower)
			continue
		}

		// Capitalized tokens past the sentence start are treated as
		// proper nouns; a preceding preposition marks a location.
		if i > 0 && isCapitalized(tok) {
			prev := strings.ToLower(tokens[i-1])
			if locationPrepositions[prev] {
				entities.Add(models.EntityLocations, tok)
			} else {
				entities.Add(models.EntityPeople, tok)
			}
			continue
		}

		if len(lower) > 6 && !stopwords[lower] {
			entities.Add(models.EntityKeyConcepts, lower)
		}
	}

	return entities, nil
}

// tokenize splits text on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isCapitalized(tok string) bool {
	r := []rune(tok)
	return len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsLower(r[1])
}

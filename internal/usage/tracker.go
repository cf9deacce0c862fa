package usage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// Scoring and dedup constants.
const (
	// DedupWindow is how far back similar queries suppress re-invocation.
	DedupWindow = time.Hour
	// DedupSimilarity is the word-overlap threshold for "same query".
	DedupSimilarity = 0.7
	// RetryThreshold gates the single relaxed-query retry.
	RetryThreshold = 0.4
	// successWindow bounds the trailing success-rate lookback.
	successWindow = 24 * time.Hour
	// rewardConfidence is the confidence above which a success raises the
	// tool's preference score.
	rewardConfidence = 0.7

	confidenceBase  = 0.5
	lengthBonus     = 0.2
	errorPenalty    = 0.3
	minUsefulLength = 50

	preferenceStep = 0.1
	feedbackStep   = 0.15
)

// errorMarkers flag a result as likely useless.
var errorMarkers = []string{"error", "not found"}

// Tracker scores tool results against a session's history and maintains
// the session's preference profile. Safe for concurrent use within a
// session; distinct sessions get distinct trackers.
type Tracker struct {
	store     *Store
	sessionID string

	mu      sync.Mutex
	profile *models.PreferenceProfile

	// now is swappable for tests.
	now func() time.Time
}

// NewTracker loads the session's profile and returns its tracker.
func NewTracker(store *Store, sessionID string) (*Tracker, error) {
	profile, err := store.LoadProfile(sessionID)
	if err != nil {
		return nil, err
	}
	return &Tracker{
		store:     store,
		sessionID: sessionID,
		profile:   profile,
		now:       time.Now,
	}, nil
}

// SessionID returns the session this tracker is scoped to.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// PreferenceScore returns the session's preference for a tool.
func (t *Tracker) PreferenceScore(tool string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.PreferenceScore(tool)
}

// QueryPatterns returns the tool's remembered successful queries.
func (t *Tracker) QueryPatterns(tool string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	patterns := t.profile.QueryPatterns[tool]
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out
}

// RecentlyUsed reports whether a sufficiently similar query was issued
// for the tool within the dedup window.
func (t *Tracker) RecentlyUsed(tool, query string) bool {
	records, err := t.store.RecentUsage(t.sessionID, tool, t.now().Add(-DedupWindow))
	if err != nil {
		return false
	}
	for _, rec := range records {
		if QuerySimilarity(query, rec.Query) >= DedupSimilarity {
			return true
		}
	}
	return false
}

// Confidence estimates how useful a tool result is, in [0,1]. The raw
// result score blends first with the tool's preference score and then
// with its trailing 24 hour success rate when history exists.
func (t *Tracker) Confidence(tool, result string) float64 {
	score := confidenceBase
	if len(result) > minUsefulLength {
		score += lengthBonus
	}
	lower := strings.ToLower(result)
	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			score -= errorPenalty
			break
		}
	}

	score = (score + t.PreferenceScore(tool)) / 2

	records, err := t.store.RecentUsage(t.sessionID, tool, t.now().Add(-successWindow))
	if err == nil && len(records) > 0 {
		succeeded := 0
		for _, rec := range records {
			if rec.Success {
				succeeded++
			}
		}
		rate := float64(succeeded) / float64(len(records))
		score = (score + rate) / 2
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Record appends an invocation to the usage log and updates the
// preference profile: a success scoring above the reward threshold bumps
// the tool's preference and remembers the query pattern.
func (t *Tracker) Record(rec *models.ToolUsageRecord) error {
	rec.SessionID = t.sessionID
	if rec.Timestamp.IsZero() {
		rec.Timestamp = t.now()
	}
	if err := t.store.AppendUsage(rec); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if rec.Success && rec.ConfidenceScore > rewardConfidence {
		current := t.profile.PreferenceScore(rec.ToolName)
		t.profile.PreferredTools[rec.ToolName] = min(current+preferenceStep, 1.0)
		t.profile.RememberQuery(rec.ToolName, rec.Query)
	}
	return t.store.SaveProfile(t.sessionID, t.profile)
}

// AddFeedback attaches user feedback to a recorded invocation and adjusts
// the tool's preference by the rating: 4 and up rewards, 2 and below
// penalizes, 3 leaves it unchanged. Rating 0 means no rating given.
func (t *Tracker) AddFeedback(recordID, feedback string, rating int) error {
	rec, err := t.store.GetUsage(recordID)
	if err != nil {
		return err
	}
	if rec.SessionID != t.sessionID {
		return fmt.Errorf("usage record %q belongs to another session", recordID)
	}
	if err := t.store.SetFeedback(recordID, feedback); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile.FeedbackHistory = append(t.profile.FeedbackHistory, models.FeedbackEntry{
		ToolName:  rec.ToolName,
		Query:     rec.Query,
		Feedback:  feedback,
		Rating:    rating,
		Timestamp: t.now(),
	})

	if rating > 0 {
		current := t.profile.PreferenceScore(rec.ToolName)
		switch {
		case rating >= 4:
			t.profile.PreferredTools[rec.ToolName] = min(current+feedbackStep, 1.0)
		case rating <= 2:
			t.profile.PreferredTools[rec.ToolName] = max(current-feedbackStep, 0.0)
		}
	}
	return t.store.SaveProfile(t.sessionID, t.profile)
}

// QuerySimilarity computes word-overlap similarity between two queries
// (intersection over union of their lowercase word sets).
func QuerySimilarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	union := len(wordsB)
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

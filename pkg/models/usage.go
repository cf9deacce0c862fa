package models

import "time"

// ToolUsageRecord is one entry in the append-only tool usage log. Records
// are never mutated after creation.
type ToolUsageRecord struct {
	// ID is the record's unique identifier.
	ID string `json:"id"`
	// SessionID scopes the record to a chat session.
	SessionID string `json:"session_id"`
	// ToolName identifies the tool that was invoked.
	ToolName string `json:"tool_name"`
	// Query is the query string sent to the tool.
	Query string `json:"query"`
	// Result is the raw result text (or error string on failure).
	Result string `json:"result"`
	// ConfidenceScore estimates result usefulness in [0,1].
	ConfidenceScore float64 `json:"confidence_score"`
	// Success is true when the invocation produced a usable result.
	Success bool `json:"success"`
	// Retry marks records produced by a relaxed-query retry.
	Retry bool `json:"retry,omitempty"`
	// Feedback holds optional explicit user feedback text.
	Feedback string `json:"feedback,omitempty"`
	// Timestamp is when the invocation happened.
	Timestamp time.Time `json:"timestamp"`
}

// MaxQueryPatterns bounds the per-tool list of remembered successful queries.
const MaxQueryPatterns = 10

// FeedbackEntry is one explicit user feedback event, appended to the
// preference profile's history.
type FeedbackEntry struct {
	ToolName  string    `json:"tool_name"`
	Query     string    `json:"query"`
	Feedback  string    `json:"feedback"`
	Rating    int       `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PreferenceProfile is the per-session learned weighting of which tools
// have historically produced useful results. Mutated incrementally after
// every tool invocation and optional user feedback; persisted keyed by
// session ID and reloaded at session start.
type PreferenceProfile struct {
	// PreferredTools maps tool name to a preference score in [0,1].
	PreferredTools map[string]float64 `json:"preferred_tools"`
	// QueryPatterns maps tool name to its recent successful queries,
	// oldest first, capped at MaxQueryPatterns.
	QueryPatterns map[string][]string `json:"query_patterns"`
	// FeedbackHistory is the append-only list of explicit feedback events.
	FeedbackHistory []FeedbackEntry `json:"feedback_history"`
	// LastUpdated is when the profile last changed.
	LastUpdated time.Time `json:"last_updated"`
}

// NewPreferenceProfile returns an empty profile with initialized maps.
func NewPreferenceProfile() *PreferenceProfile {
	return &PreferenceProfile{
		PreferredTools: make(map[string]float64),
		QueryPatterns:  make(map[string][]string),
	}
}

// PreferenceScore returns the tool's preference score, defaulting to 0.5
// for tools with no history.
func (p *PreferenceProfile) PreferenceScore(tool string) float64 {
	if score, ok := p.PreferredTools[tool]; ok {
		return score
	}
	return 0.5
}

// RememberQuery appends a successful query to the tool's pattern list,
// evicting the oldest entry once the cap is reached.
func (p *PreferenceProfile) RememberQuery(tool, query string) {
	patterns := append(p.QueryPatterns[tool], query)
	if len(patterns) > MaxQueryPatterns {
		patterns = patterns[len(patterns)-MaxQueryPatterns:]
	}
	p.QueryPatterns[tool] = patterns
}

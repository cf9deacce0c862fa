package usage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// AppendUsage inserts a usage record, assigning an ID and timestamp when
// unset. Records are append-only; there is no update path.
func (s *Store) AppendUsage(rec *models.ToolUsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO tool_usage (id, session_id, tool_name, query, result, confidence_score, success, retry, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.ToolName, rec.Query, rec.Result,
		rec.ConfidenceScore, boolInt(rec.Success), boolInt(rec.Retry),
		nullString(rec.Feedback), formatTime(rec.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("insert usage record: %w", err)
	}
	return nil
}

// RecentUsage returns a session's records for one tool at or after the
// cutoff, oldest first. An empty toolName matches all tools.
func (s *Store) RecentUsage(sessionID, toolName string, since time.Time) ([]models.ToolUsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, session_id, tool_name, query, result, confidence_score, success, retry, feedback, created_at
		FROM tool_usage
		WHERE session_id = ? AND created_at >= ?`
	args := []any{sessionID, formatTime(since)}
	if toolName != "" {
		query += " AND tool_name = ?"
		args = append(args, toolName)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// History returns a session's most recent records, newest first.
func (s *Store) History(sessionID string, limit int) ([]models.ToolUsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, session_id, tool_name, query, result, confidence_score, success, retry, feedback, created_at
		FROM tool_usage
		WHERE session_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query usage history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// SetFeedback attaches feedback text to an existing record. Feedback is
// the one mutable column on the log.
func (s *Store) SetFeedback(recordID, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE tool_usage SET feedback = ? WHERE id = ?", feedback, recordID)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("usage record %q not found", recordID)
	}
	return nil
}

// GetUsage returns one record by ID.
func (s *Store) GetUsage(recordID string) (*models.ToolUsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, session_id, tool_name, query, result, confidence_score, success, retry, feedback, created_at
		FROM tool_usage WHERE id = ?`, recordID)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("usage record %q not found", recordID)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadProfile returns the session's preference profile, or a fresh empty
// profile when none was persisted yet.
func (s *Store) LoadProfile(sessionID string) (*models.PreferenceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	row := s.db.QueryRow("SELECT profile FROM preference_profiles WHERE session_id = ?", sessionID)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return models.NewPreferenceProfile(), nil
		}
		return nil, fmt.Errorf("load preference profile: %w", err)
	}

	profile := models.NewPreferenceProfile()
	if err := json.Unmarshal([]byte(raw), profile); err != nil {
		return nil, fmt.Errorf("decode preference profile: %w", err)
	}
	if profile.PreferredTools == nil {
		profile.PreferredTools = make(map[string]float64)
	}
	if profile.QueryPatterns == nil {
		profile.QueryPatterns = make(map[string][]string)
	}
	return profile, nil
}

// SaveProfile upserts the session's preference profile.
func (s *Store) SaveProfile(sessionID string, profile *models.PreferenceProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.LastUpdated = time.Now()
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode preference profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO preference_profiles (session_id, profile, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET profile = excluded.profile, updated_at = excluded.updated_at`,
		sessionID, string(raw), formatTime(profile.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("save preference profile: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.ToolUsageRecord, error) {
	var rec models.ToolUsageRecord
	var success, retry int
	var feedback sql.NullString
	var createdAt string

	err := row.Scan(&rec.ID, &rec.SessionID, &rec.ToolName, &rec.Query, &rec.Result,
		&rec.ConfidenceScore, &success, &retry, &feedback, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.Success = success != 0
	rec.Retry = retry != 0
	rec.Feedback = feedback.String
	if ts, err := parseTime(createdAt); err == nil {
		rec.Timestamp = ts
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]models.ToolUsageRecord, error) {
	var records []models.ToolUsageRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package usage

// Migrate creates the necessary tables and indexes if they don't exist.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS usage_schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM usage_schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1ToolUsage},
		{2, migrationV2Profiles},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.Exec("INSERT INTO usage_schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

const migrationV1ToolUsage = `
CREATE TABLE IF NOT EXISTS tool_usage (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	tool_name TEXT NOT NULL,
	query TEXT NOT NULL,
	result TEXT NOT NULL,
	confidence_score REAL NOT NULL,
	success INTEGER NOT NULL DEFAULT 1,
	retry INTEGER NOT NULL DEFAULT 0,
	feedback TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tool_usage_session ON tool_usage(session_id);
CREATE INDEX IF NOT EXISTS idx_tool_usage_tool ON tool_usage(session_id, tool_name, created_at);
`

const migrationV2Profiles = `
CREATE TABLE IF NOT EXISTS preference_profiles (
	session_id TEXT PRIMARY KEY,
	profile TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

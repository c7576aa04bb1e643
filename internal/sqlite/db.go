package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The UNIQUE constraints on the two
// submission tables are the authoritative enforcement of the
// one-submission-per-project-per-week invariant; the guard's pre-check is
// only a fast path.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    team_id TEXT NOT NULL,
    client_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'planning'
        CHECK(status IN ('planning', 'in_progress', 'completed', 'on_hold')),
    delivery_reliability_score INTEGER NOT NULL DEFAULT 50,
    client_happiness_index INTEGER NOT NULL DEFAULT 50,
    team_load_risk TEXT NOT NULL DEFAULT 'low'
        CHECK(team_load_risk IN ('low', 'medium', 'high')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_projects_team ON projects(team_id);
CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);

-- Weekly team reports
CREATE TABLE IF NOT EXISTS team_reports (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    submitted_by TEXT NOT NULL,
    week_number INTEGER NOT NULL,
    year INTEGER NOT NULL,
    tasks_completed INTEGER NOT NULL CHECK(tasks_completed >= 0),
    tasks_pending INTEGER NOT NULL CHECK(tasks_pending >= 0),
    workload_level TEXT NOT NULL CHECK(workload_level IN ('light', 'normal', 'heavy')),
    on_time_confidence INTEGER NOT NULL CHECK(on_time_confidence BETWEEN 1 AND 5),
    blockers TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
    UNIQUE (project_id, week_number, year)
);
CREATE INDEX IF NOT EXISTS idx_reports_project ON team_reports(project_id);
CREATE INDEX IF NOT EXISTS idx_reports_week ON team_reports(year, week_number);

-- Weekly client reviews
CREATE TABLE IF NOT EXISTS client_reviews (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    submitted_by TEXT NOT NULL,
    week_number INTEGER NOT NULL,
    year INTEGER NOT NULL,
    delivery_quality INTEGER NOT NULL CHECK(delivery_quality BETWEEN 1 AND 5),
    responsiveness INTEGER NOT NULL CHECK(responsiveness BETWEEN 1 AND 5),
    overall_satisfaction INTEGER NOT NULL CHECK(overall_satisfaction BETWEEN 1 AND 5),
    comment TEXT,
    flagged_problem INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
    UNIQUE (project_id, week_number, year)
);
CREATE INDEX IF NOT EXISTS idx_reviews_project ON client_reviews(project_id);
CREATE INDEX IF NOT EXISTS idx_reviews_week ON client_reviews(year, week_number);
CREATE INDEX IF NOT EXISTS idx_reviews_flagged ON client_reviews(flagged_problem);

-- Activity log. No foreign key: the cascade on project deletion is an
-- explicit repository operation, not a storage trigger.
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('report', 'review', 'flag', 'status_change')),
    actor_id TEXT NOT NULL,
    actor_role TEXT NOT NULL,
    description TEXT NOT NULL,
    metadata TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_project ON activity_log(project_id, created_at);
CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

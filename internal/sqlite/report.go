package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/rpggio/pulseboard/internal/repository"
)

// ReportRepository persists weekly team reports in SQLite
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `
	id, project_id, submitted_by, week_number, year,
	tasks_completed, tasks_pending, workload_level, on_time_confidence,
	blockers, created_at
`

// Create inserts a new team report. A second report for the same project
// and week violates the UNIQUE constraint and maps to ErrDuplicate, which
// is how a racing writer is turned into a Conflict.
func (r *ReportRepository) Create(ctx context.Context, rep *submission.TeamReport) error {
	blockers, err := json.Marshal(rep.Blockers)
	if err != nil {
		return fmt.Errorf("failed to encode blockers: %w", err)
	}

	query := `
		INSERT INTO team_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		rep.ID,
		rep.ProjectID,
		rep.SubmittedBy,
		rep.WeekNumber,
		rep.Year,
		rep.TasksCompleted,
		rep.TasksPending,
		rep.WorkloadLevel,
		rep.OnTimeConfidence,
		string(blockers),
		rep.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create team report: %w", err)
	}

	return nil
}

// Get retrieves a team report by ID
func (r *ReportRepository) Get(ctx context.Context, id string) (*submission.TeamReport, error) {
	query := `SELECT ` + reportColumns + ` FROM team_reports WHERE id = ?`

	rep, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team report: %w", err)
	}
	return rep, nil
}

// Exists reports whether a team report exists for the project and week
func (r *ReportRepository) Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_reports WHERE project_id = ? AND year = ? AND week_number = ?)`,
		projectID, year, weekNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team report existence: %w", err)
	}
	return exists, nil
}

// List returns team reports matching the given options, newest first
func (r *ReportRepository) List(ctx context.Context, opts submission.ListOptions) ([]submission.TeamReport, error) {
	query := `SELECT ` + reportColumns + ` FROM team_reports WHERE 1=1`

	var args []interface{}
	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}
	if opts.WeekNumber != nil {
		query += " AND week_number = ?"
		args = append(args, *opts.WeekNumber)
	}
	if opts.Year != nil {
		query += " AND year = ?"
		args = append(args, *opts.Year)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list team reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListForProject returns the project's most recent reports, newest week
// first
func (r *ReportRepository) ListForProject(ctx context.Context, projectID string, limit int) ([]submission.TeamReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM team_reports
		WHERE project_id = ?
		ORDER BY year DESC, week_number DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list project reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ProjectIDsForWeek returns the IDs of projects that already have a team
// report for the given week
func (r *ReportRepository) ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id FROM team_reports WHERE year = ? AND week_number = ?`,
		year, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return ids, nil
}

// Delete removes a team report
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team report: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanReport(row rowScanner) (*submission.TeamReport, error) {
	var rep submission.TeamReport
	var blockers string
	err := row.Scan(
		&rep.ID,
		&rep.ProjectID,
		&rep.SubmittedBy,
		&rep.WeekNumber,
		&rep.Year,
		&rep.TasksCompleted,
		&rep.TasksPending,
		&rep.WorkloadLevel,
		&rep.OnTimeConfidence,
		&blockers,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blockers), &rep.Blockers); err != nil {
		return nil, fmt.Errorf("failed to decode blockers: %w", err)
	}
	return &rep, nil
}

func collectReports(rows *sql.Rows) ([]submission.TeamReport, error) {
	var reports []submission.TeamReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team report: %w", err)
		}
		reports = append(reports, *rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

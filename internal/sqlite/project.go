package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/repository"
)

// ProjectRepository persists projects in SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
	id, name, description, start_date, end_date, team_id, client_id, status,
	delivery_reliability_score, client_happiness_index, team_load_risk,
	created_at, updated_at
`

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		proj.StartDate,
		proj.EndDate,
		proj.TeamID,
		proj.ClientID,
		proj.Status,
		proj.DeliveryReliabilityScore,
		proj.ClientHappinessIndex,
		proj.TeamLoadRisk,
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns projects matching the given options, most recently updated
// first
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`

	var args []interface{}
	if opts.TeamID != "" {
		query += " AND team_id = ?"
		args = append(args, opts.TeamID)
	}
	if opts.ClientID != "" {
		query += " AND client_id = ?"
		args = append(args, opts.ClientID)
	}
	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, status := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ","))
	}

	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// UpdateStatus moves a project to a new phase, leaving scores untouched
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	query := `UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
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

// UpdateScores overwrites only the score fields named in the update. The
// two submission kinds own disjoint field sets, so concurrent updates of
// different kinds don't clobber each other.
func (r *ProjectRepository) UpdateScores(ctx context.Context, id string, update project.ScoreUpdate) error {
	var sets []string
	var args []interface{}

	if update.DeliveryReliabilityScore != nil {
		sets = append(sets, "delivery_reliability_score = ?")
		args = append(args, *update.DeliveryReliabilityScore)
	}
	if update.ClientHappinessIndex != nil {
		sets = append(sets, "client_happiness_index = ?")
		args = append(args, *update.ClientHappinessIndex)
	}
	if update.TeamLoadRisk != nil {
		sets = append(sets, "team_load_risk = ?")
		args = append(args, *update.TeamLoadRisk)
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project scores: %w", err)
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

// Delete removes a project; reports and reviews cascade via foreign keys
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var description sql.NullString
	var startDate, endDate sql.NullTime
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&description,
		&startDate,
		&endDate,
		&proj.TeamID,
		&proj.ClientID,
		&proj.Status,
		&proj.DeliveryReliabilityScore,
		&proj.ClientHappinessIndex,
		&proj.TeamLoadRisk,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	proj.Description = description.String
	proj.StartDate = startDate.Time
	proj.EndDate = endDate.Time
	return &proj, nil
}

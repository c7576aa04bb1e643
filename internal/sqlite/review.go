package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/rpggio/pulseboard/internal/repository"
)

// ReviewRepository persists weekly client reviews in SQLite
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `
	id, project_id, submitted_by, week_number, year,
	delivery_quality, responsiveness, overall_satisfaction,
	comment, flagged_problem, created_at
`

// Create inserts a new client review. Same uniqueness handling as team
// reports: the constraint turns a racing duplicate into ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, rev *submission.ClientReview) error {
	query := `
		INSERT INTO client_reviews (` + reviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rev.ID,
		rev.ProjectID,
		rev.SubmittedBy,
		rev.WeekNumber,
		rev.Year,
		rev.DeliveryQuality,
		rev.Responsiveness,
		rev.OverallSatisfaction,
		rev.Comment,
		rev.FlaggedProblem,
		rev.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create client review: %w", err)
	}

	return nil
}

// Get retrieves a client review by ID
func (r *ReviewRepository) Get(ctx context.Context, id string) (*submission.ClientReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM client_reviews WHERE id = ?`

	rev, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client review: %w", err)
	}
	return rev, nil
}

// Exists reports whether a client review exists for the project and week
func (r *ReviewRepository) Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM client_reviews WHERE project_id = ? AND year = ? AND week_number = ?)`,
		projectID, year, weekNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client review existence: %w", err)
	}
	return exists, nil
}

// List returns client reviews matching the given options, newest first
func (r *ReviewRepository) List(ctx context.Context, opts submission.ListOptions) ([]submission.ClientReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM client_reviews WHERE 1=1`

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
		return nil, fmt.Errorf("failed to list client reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// ListForProject returns the project's most recent reviews, newest week
// first
func (r *ReviewRepository) ListForProject(ctx context.Context, projectID string, limit int) ([]submission.ClientReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM client_reviews
		WHERE project_id = ?
		ORDER BY year DESC, week_number DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list project reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// ListFlagged returns the most recent reviews with a flagged problem
func (r *ReviewRepository) ListFlagged(ctx context.Context, limit int) ([]submission.ClientReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM client_reviews
		WHERE flagged_problem = 1
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list flagged reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

// ProjectIDsForWeek returns the IDs of projects that already have a client
// review for the given week
func (r *ReviewRepository) ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id FROM client_reviews WHERE year = ? AND week_number = ?`,
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
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return ids, nil
}

// Delete removes a client review
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM client_reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client review: %w", err)
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

func scanReview(row rowScanner) (*submission.ClientReview, error) {
	var rev submission.ClientReview
	var comment sql.NullString
	err := row.Scan(
		&rev.ID,
		&rev.ProjectID,
		&rev.SubmittedBy,
		&rev.WeekNumber,
		&rev.Year,
		&rev.DeliveryQuality,
		&rev.Responsiveness,
		&rev.OverallSatisfaction,
		&comment,
		&rev.FlaggedProblem,
		&rev.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rev.Comment = comment.String
	return &rev, nil
}

func collectReviews(rows *sql.Rows) ([]submission.ClientReview, error) {
	var reviews []submission.ClientReview
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client review: %w", err)
		}
		reviews = append(reviews, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

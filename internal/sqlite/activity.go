package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rpggio/pulseboard/internal/domain/activity"
)

// ActivityRepository persists activity log entries in SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts a new activity entry and fills in its assigned ID.
// Activity rows intentionally carry no foreign key to projects, so an
// append never fails because its project is mid-deletion.
func (r *ActivityRepository) Append(ctx context.Context, entry *activity.Activity) error {
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal activity metadata: %w", err)
		}
	}

	query := `
		INSERT INTO activity_log (project_id, type, actor_id, actor_role, description, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ProjectID,
		entry.Type,
		entry.ActorID,
		entry.ActorRole,
		entry.Description,
		nullableString(metadata),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get activity id: %w", err)
	}
	entry.ID = id

	return nil
}

// List returns activity entries matching the given options, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	query := `
		SELECT id, project_id, type, actor_id, actor_role, description, metadata, created_at
		FROM activity_log
		WHERE 1=1
	`

	var args []interface{}
	if opts.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, opts.ProjectID)
	}
	if opts.Type != nil {
		query += " AND type = ?"
		args = append(args, *opts.Type)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Activity
	for rows.Next() {
		var entry activity.Activity
		var metadata sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.Type,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.Description,
			&metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal activity metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}

// DeleteForProject removes all activity entries for a project and returns
// how many were removed
func (r *ActivityRepository) DeleteForProject(ctx context.Context, projectID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activity_log WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

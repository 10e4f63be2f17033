package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/audit"
)

type AuditRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewAuditRepository(db *sql.DB, log *slog.Logger) *AuditRepository {
	return &AuditRepository{
		db:  db,
		log: log.With("component", "audit_repository"),
	}
}

func (r *AuditRepository) Insert(ctx context.Context, e audit.Entry) (int64, error) {
	const query = `
		INSERT INTO audit_logs (occurred_at, entity, entity_id, action, details)
		VALUES (?, ?, ?, ?, ?)`

	var details any
	if e.Details != "" {
		details = e.Details
	}

	res, err := r.db.ExecContext(ctx, query, e.OccurredAt, e.Entity, e.EntityID, e.Action, details)
	if err != nil {
		r.log.Error("failed to insert audit entry", "entity", e.Entity, "error", err)
		return 0, fmt.Errorf("insert audit entry: %w", err)
	}
	return res.LastInsertId()
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	const query = `
		SELECT id, occurred_at, entity, entity_id, action, details
		FROM audit_logs
		ORDER BY id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.log.Error("failed to list audit entries", "error", err)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	list := make([]audit.Entry, 0)
	for rows.Next() {
		var (
			e       audit.Entry
			details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.Entity, &e.EntityID, &e.Action, &details); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Details = details.String
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return list, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/smilecare/clinic-api/internal/model"
	"github.com/smilecare/clinic-api/internal/repository"
)

type auditRepository struct {
	BaseRepository
}

func NewAuditRepository(base BaseRepository) repository.AuditRepository {
	return &auditRepository{base}
}

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, user_id, action, entity_type, entity_id,
			changes, metadata, ip_address, user_agent, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.Action,
		log.EntityType,
		log.EntityID,
		log.Changes,
		log.Metadata,
		log.IPAddress,
		log.UserAgent,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, filters map[string]interface{}) ([]*model.AuditLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, changes, metadata, ip_address, user_agent, created_at
		FROM audit_logs WHERE 1=1
	`
	var args []interface{}

	if v, ok := filters["user_id"]; ok {
		query += fmt.Sprintf(" AND user_id = $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["entity_type"]; ok {
		query += fmt.Sprintf(" AND entity_type = $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["entity_id"]; ok {
		query += fmt.Sprintf(" AND entity_id = $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["action"]; ok {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["start_date"]; ok {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, v)
	}
	if v, ok := filters["end_date"]; ok {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, v)
	}
	query += " ORDER BY created_at DESC"

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

func (r *auditRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM audit_logs WHERE created_at < $1`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup audit logs: %w", err)
	}
	return result.RowsAffected()
}

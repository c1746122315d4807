package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	"github.com/zhiyar-dev/finman_backend/internal/models"
	"github.com/zhiyar-dev/finman_backend/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit log.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveAuditEntry appends an entry to the audit log.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_log (user_name, table_name, record_id, action, old_value, new_value, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := r.Pool.Exec(ctx, query,
		m.User,
		m.TableName,
		m.RecordID,
		m.Action,
		m.OldValue,
		m.NewValue,
		m.Timestamp,
	); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry for "+m.TableName, err)
	}
	return nil
}

// ListAuditEntries retrieves the most recent audit entries, newest first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	query := `
		SELECT entry_id, user_name, table_name, record_id, action, old_value, new_value, timestamp
		FROM audit_log
		ORDER BY timestamp DESC, entry_id DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit log", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.User,
			&m.TableName,
			&m.RecordID,
			&m.Action,
			&m.OldValue,
			&m.NewValue,
			&m.Timestamp,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit log row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit log rows", err)
	}

	out := make([]domain.AuditEntry, len(entries))
	for i, m := range entries {
		out[i] = mapping.ToDomainAuditEntry(m)
	}
	return out, nil
}

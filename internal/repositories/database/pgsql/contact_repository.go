package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhiyar-dev/finman_backend/internal/apperrors"
	"github.com/zhiyar-dev/finman_backend/internal/core/domain"
	portsrepo "github.com/zhiyar-dev/finman_backend/internal/core/ports/repositories"
	"github.com/zhiyar-dev/finman_backend/internal/models"
	"github.com/zhiyar-dev/finman_backend/internal/utils/mapping"
)

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxContactRepository implements portsrepo.ContactRepository
var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

// SaveContact persists a new contact and returns its generated ID.
func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) (int64, error) {
	m := mapping.ToModelContact(contact)
	query := `
		INSERT INTO contacts (kind, name, contact_info, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING contact_id;
	`
	var contactID int64
	err := r.Pool.QueryRow(ctx, query,
		m.Kind,
		m.Name,
		m.ContactInfo,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&contactID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert contact "+m.Name, err)
	}
	return contactID, nil
}

// FindContactByID retrieves a contact by ID and kind.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID int64, kind domain.ContactKind) (*domain.Contact, error) {
	query := `
		SELECT contact_id, kind, name, contact_info, created_at, created_by, last_updated_at, last_updated_by
		FROM contacts
		WHERE contact_id = $1 AND kind = $2;
	`
	var m models.Contact
	err := r.Pool.QueryRow(ctx, query, contactID, string(kind)).Scan(
		&m.ContactID,
		&m.Kind,
		&m.Name,
		&m.ContactInfo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("contact " + strconv.FormatInt(contactID, 10) + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find contact "+strconv.FormatInt(contactID, 10), err)
	}

	contact := mapping.ToDomainContact(m)
	return &contact, nil
}

// ListContacts retrieves all contacts of the given kind, ordered by name.
func (r *PgxContactRepository) ListContacts(ctx context.Context, kind domain.ContactKind) ([]domain.Contact, error) {
	query := `
		SELECT contact_id, kind, name, contact_info, created_at, created_by, last_updated_at, last_updated_by
		FROM contacts
		WHERE kind = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contacts", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var m models.Contact
		if err := rows.Scan(
			&m.ContactID,
			&m.Kind,
			&m.Name,
			&m.ContactInfo,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contact row", err)
		}
		contacts = append(contacts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contact rows", err)
	}

	return mapping.ToDomainContactSlice(contacts), nil
}

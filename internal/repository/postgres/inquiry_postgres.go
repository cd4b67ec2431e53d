package postgres

import (
	"context"
	"database/sql"

	"inquirysync/internal/model"
	"inquirysync/internal/repository"
)

// InquiryPostgres is a PostgreSQL implementation of repository.InquiryRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type InquiryPostgres struct {
	db *sql.DB
}

// NewInquiryPostgres creates a new InquiryPostgres repository.
func NewInquiryPostgres(db *sql.DB) *InquiryPostgres {
	return &InquiryPostgres{db: db}
}

var _ repository.InquiryRepository = (*InquiryPostgres)(nil)

// FindByID fetches a single record by its ID.
func (r *InquiryPostgres) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	const q = `
		SELECT id, logical_name, response, external_id, modified_by, created_at, modified_at
		FROM inquiries
		WHERE id = $1
	`
	var (
		inq        model.Inquiry
		externalID sql.NullString
		modifiedBy sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&inq.ID,
		&inq.LogicalName,
		&inq.Response,
		&externalID,
		&modifiedBy,
		&inq.CreatedAt,
		&inq.ModifiedAt,
	); err != nil {
		return nil, err
	}
	inq.ExternalID = model.ExternalReference(externalID.String)
	inq.ModifiedBy = modifiedBy.String
	return &inq, nil
}

// SetExternalID writes the external_id column only. A missing row yields sql.ErrNoRows.
func (r *InquiryPostgres) SetExternalID(ctx context.Context, id string, ref model.ExternalReference) error {
	const q = `UPDATE inquiries SET external_id = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, nullable(ref.String()))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

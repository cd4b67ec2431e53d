package repository

import (
	"context"

	"inquirysync/internal/model"
)

// InquiryRepository is the record store of the host platform, reduced to what the bridges need.
// Implementations return sql.ErrNoRows when a record does not exist.
type InquiryRepository interface {
	// FindByID returns all columns of a record.
	FindByID(ctx context.Context, id string) (*model.Inquiry, error)

	// SetExternalID stores ref on a record. No other column is written.
	SetExternalID(ctx context.Context, id string, ref model.ExternalReference) error
}

package mocks

import (
	"context"

	"inquirysync/internal/model"
	"inquirysync/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockInquiryRepository is a testify mock of repository.InquiryRepository.
type MockInquiryRepository struct {
	mock.Mock
}

var _ repository.InquiryRepository = (*MockInquiryRepository)(nil)

func (m *MockInquiryRepository) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryRepository) SetExternalID(ctx context.Context, id string, ref model.ExternalReference) error {
	args := m.Called(ctx, id, ref)
	return args.Error(0)
}

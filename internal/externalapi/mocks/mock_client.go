package mocks

import (
	"context"

	"inquirysync/internal/externalapi"
	"inquirysync/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of externalapi.Client.
type MockClient struct {
	mock.Mock
}

var _ externalapi.Client = (*MockClient)(nil)

func (m *MockClient) Create(ctx context.Context, payload model.SyncPayload) (model.ExternalReference, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.ExternalReference), args.Error(1)
}

func (m *MockClient) Update(ctx context.Context, ref model.ExternalReference, payload model.SyncPayload) error {
	args := m.Called(ctx, ref, payload)
	return args.Error(0)
}

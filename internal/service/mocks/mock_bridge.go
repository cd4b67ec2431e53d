package mocks

import (
	"context"

	"inquirysync/internal/model"
	"inquirysync/internal/service"
	"inquirysync/internal/tracelog"

	"github.com/stretchr/testify/mock"
)

// MockBridge is a testify mock of service.Bridge.
type MockBridge struct {
	mock.Mock
}

var _ service.Bridge = (*MockBridge)(nil)

func (m *MockBridge) Handle(ctx context.Context, ec model.ExecutionContext, sink tracelog.Sink) (*service.Result, error) {
	args := m.Called(ctx, ec, sink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inquirysync/internal/externalapi"
	apiMocks "inquirysync/internal/externalapi/mocks"
	"inquirysync/internal/model"
	repoMocks "inquirysync/internal/repository/mocks"
)

func TestCreateBridge_Handle(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	stored := func() *model.Inquiry {
		return &model.Inquiry{
			ID:          recordID,
			LogicalName: entityName,
			Response:    "initial",
			CreatedAt:   created,
			ModifiedAt:  created,
		}
	}

	tests := []struct {
		name       string
		event      model.ExecutionContext
		setupMocks func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient)
		wantStatus Status
		wantRef    model.ExternalReference
		wantErr    error
		wantMsg    string
		wantLines  int
	}{
		{
			name:  "happy path",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, model.SyncPayload{ID: recordID, Response: "frederick"}).
					Return(model.ExternalReference("ABCDEFGHIJKLMNOPQRSTUVWX"), nil)
				mRepo.On("FindByID", mock.Anything, recordID).Return(stored(), nil)
				mRepo.On("SetExternalID", mock.Anything, recordID, model.ExternalReference("ABCDEFGHIJKLMNOPQRSTUVWX")).
					Return(nil)
			},
			wantStatus: StatusSynced,
			wantRef:    "ABCDEFGHIJKLMNOPQRSTUVWX",
			wantLines:  1,
		},
		{
			name:       "other record type is skipped",
			event:      createEvent("contact"),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {},
			wantStatus: StatusSkipped,
		},
		{
			name:       "no target is skipped",
			event:      model.ExecutionContext{MessageName: "Create"},
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {},
			wantStatus: StatusSkipped,
		},
		{
			name: "invalid target id",
			event: func() model.ExecutionContext {
				ec := createEvent(entityName)
				ec.InputParameters.Target.ID = "42"
				return ec
			}(),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {},
			wantErr:    ErrInvalidEvent,
		},
		{
			name:  "timeout",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference(""),
					&externalapi.Error{Kind: externalapi.KindTimeout, Op: "create", Err: context.DeadlineExceeded})
			},
			wantMsg: MsgTimeout,
		},
		{
			name:  "server error",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference(""),
					&externalapi.Error{
						Kind:       externalapi.KindTransport,
						Op:         "create",
						StatusCode: 500,
						Body:       "oops",
						Err:        errors.New("the remote server returned an error: (500) Internal Server Error"),
					})
			},
			wantMsg: "A Web exception occurred while attempting to issue the request. " +
				"the remote server returned an error: (500) Internal Server Error: oops",
		},
		{
			name:  "unreadable response",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference(""),
					&externalapi.Error{Kind: externalapi.KindParse, Op: "create", Err: errors.New("create response has no id")})
			},
			wantMsg: "The external service returned an unreadable response. create response has no id",
		},
		{
			name:  "record vanished",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference("ABC"), nil)
				mRepo.On("FindByID", mock.Anything, recordID).Return(nil, sql.ErrNoRows)
			},
			wantErr: sql.ErrNoRows,
		},
		{
			name:  "update failure",
			event: createEvent(entityName),
			setupMocks: func(mRepo *repoMocks.MockInquiryRepository, mAPI *apiMocks.MockClient) {
				mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference("ABC"), nil)
				mRepo.On("FindByID", mock.Anything, recordID).Return(stored(), nil)
				mRepo.On("SetExternalID", mock.Anything, recordID, model.ExternalReference("ABC")).Return(errors.New("db fail"))
			},
			wantMsg: "update record " + recordID + ": db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockInquiryRepository)
			mAPI := new(apiMocks.MockClient)
			tt.setupMocks(mRepo, mAPI)

			b := NewCreateBridge(mRepo, mAPI, testOptions)
			sink := &recordingSink{}

			res, err := b.Handle(ctx, tt.event, sink)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			case tt.wantMsg != "":
				assert.EqualError(t, err, tt.wantMsg)
				assert.Nil(t, res)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.Equal(t, tt.wantRef, res.ExternalID)
			}
			assert.Len(t, sink.lines, tt.wantLines)

			mRepo.AssertExpectations(t)
			mAPI.AssertExpectations(t)
		})
	}
}

func TestCreateBridge_SkipHasNoSideEffects(t *testing.T) {
	mRepo := new(repoMocks.MockInquiryRepository)
	mAPI := new(apiMocks.MockClient)

	res, err := NewCreateBridge(mRepo, mAPI, testOptions).Handle(context.Background(), createEvent("account"), &recordingSink{})

	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	mAPI.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	mRepo.AssertNotCalled(t, "SetExternalID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBridge_ChangesOnlyExternalID(t *testing.T) {
	original := model.Inquiry{
		ID:          recordID,
		LogicalName: entityName,
		Response:    "initial",
		ModifiedBy:  "orig-user",
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ModifiedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	stored := original

	mAPI := new(apiMocks.MockClient)
	mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference("ABCDEFGHIJKLMNOPQRSTUVWX"), nil)
	mRepo := new(repoMocks.MockInquiryRepository)
	mRepo.On("FindByID", mock.Anything, recordID).Return(&stored, nil)
	mRepo.On("SetExternalID", mock.Anything, recordID, model.ExternalReference("ABCDEFGHIJKLMNOPQRSTUVWX")).Return(nil)

	_, err := NewCreateBridge(mRepo, mAPI, testOptions).Handle(context.Background(), createEvent(entityName), &recordingSink{})
	require.NoError(t, err)

	want := original
	want.ExternalID = "ABCDEFGHIJKLMNOPQRSTUVWX"
	assert.Equal(t, want, stored)
	mRepo.AssertNumberOfCalls(t, "SetExternalID", 1)
}

func TestCreateBridge_ExecutionErrorKind(t *testing.T) {
	mAPI := new(apiMocks.MockClient)
	mAPI.On("Create", mock.Anything, mock.Anything).Return(model.ExternalReference(""),
		&externalapi.Error{Kind: externalapi.KindTimeout, Op: "create", Err: context.DeadlineExceeded})

	_, err := NewCreateBridge(new(repoMocks.MockInquiryRepository), mAPI, testOptions).
		Handle(context.Background(), createEvent(entityName), &recordingSink{})

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, KindTimeout, execErr.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package service

import (
	"context"
	"fmt"

	"inquirysync/internal/externalapi"
	"inquirysync/internal/model"
	"inquirysync/internal/repository"
	"inquirysync/internal/tracelog"
)

// CreateBridge runs after a watched record is created. It announces the record to the external
// service and stores the identifier the service generated back on the record.
type CreateBridge struct {
	repo repository.InquiryRepository
	api  externalapi.Client
	opts Options
}

var _ Bridge = (*CreateBridge)(nil)

// NewCreateBridge constructs a CreateBridge.
func NewCreateBridge(repo repository.InquiryRepository, api externalapi.Client, opts Options) *CreateBridge {
	return &CreateBridge{repo: repo, api: api, opts: opts}
}

// Handle processes a create event. Events for other record types are skipped without side effects.
func (b *CreateBridge) Handle(ctx context.Context, ec model.ExecutionContext, sink tracelog.Sink) (res *Result, err error) {
	ctx, span := startSpan(ctx, "CreateBridge.Handle", ec)
	defer func() { endSpan(span, res, err) }()

	inq, ok, err := watchedTarget(ec, b.opts.EntityName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return skipped(), nil
	}

	ref, err := b.api.Create(ctx, model.SyncPayload{ID: inq.ID, Response: b.opts.CreateResponse})
	if err != nil {
		return nil, executionError(err)
	}

	// The event carries only the submitted attributes; confirm the stored record before writing to it.
	current, err := b.repo.FindByID(ctx, inq.ID)
	if err != nil {
		return nil, fmt.Errorf("retrieve record %s: %w", inq.ID, err)
	}
	current.ExternalID = ref
	if err := b.repo.SetExternalID(ctx, current.ID, current.ExternalID); err != nil {
		return nil, fmt.Errorf("update record %s: %w", inq.ID, err)
	}

	sink.Trace("external record created for %s: %s", inq.ID, ref)
	return &Result{Status: StatusSynced, RecordID: inq.ID, ExternalID: ref}, nil
}

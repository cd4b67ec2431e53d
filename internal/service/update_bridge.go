package service

import (
	"context"
	"fmt"

	"inquirysync/internal/externalapi"
	"inquirysync/internal/model"
	"inquirysync/internal/tracelog"
)

// UpdateBridge runs after a watched record is updated. It pushes the record's response to the
// external record named by the post-update snapshot. It never writes to the record store.
type UpdateBridge struct {
	api  externalapi.Client
	opts Options
}

var _ Bridge = (*UpdateBridge)(nil)

// NewUpdateBridge constructs an UpdateBridge.
func NewUpdateBridge(api externalapi.Client, opts Options) *UpdateBridge {
	return &UpdateBridge{api: api, opts: opts}
}

// Handle processes an update event. Pre-images, if supplied, are ignored.
func (b *UpdateBridge) Handle(ctx context.Context, ec model.ExecutionContext, sink tracelog.Sink) (res *Result, err error) {
	ctx, span := startSpan(ctx, "UpdateBridge.Handle", ec)
	defer func() { endSpan(span, res, err) }()

	inq, ok, err := watchedTarget(ec, b.opts.EntityName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return skipped(), nil
	}

	ref, err := b.externalReference(ec)
	if err != nil {
		return nil, err
	}

	sink.Trace("sending update for %s, external record: %s", inq.ID, ref)
	if err := b.api.Update(ctx, ref, model.SyncPayload{ID: ref.String(), Response: inq.Response}); err != nil {
		return nil, executionError(err)
	}
	sink.Trace("update sent for %s, external record: %s", inq.ID, ref)

	return &Result{Status: StatusSynced, RecordID: inq.ID, ExternalID: ref}, nil
}

// externalReference reads the stored external id from the post-image, not from the live target.
func (b *UpdateBridge) externalReference(ec model.ExecutionContext) (model.ExternalReference, error) {
	img, ok := ec.PostImage(b.opts.PostImageName)
	if !ok {
		return "", &ExecutionError{
			Kind:    KindPrecondition,
			Message: MsgNoReference,
			Err:     fmt.Errorf("%w: post image %q not supplied", ErrMissingExternalReference, b.opts.PostImageName),
		}
	}
	ext, err := img.StringAttribute(model.AttrExternalID)
	if err != nil {
		return "", fmt.Errorf("%w: post image: %v", ErrInvalidEvent, err)
	}
	if ext == "" {
		return "", &ExecutionError{Kind: KindPrecondition, Message: MsgNoReference, Err: ErrMissingExternalReference}
	}
	return model.ExternalReference(ext), nil
}

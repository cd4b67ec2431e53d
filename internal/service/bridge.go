// Package service implements the bridges that push watched records to the external REST service.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inquirysync/internal/externalapi"
	"inquirysync/internal/model"
	"inquirysync/internal/tracelog"
)

var tracer = otel.Tracer("inquirysync/internal/service")

var (
	// ErrInvalidEvent is returned when the host delivered a target that cannot be read.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrMissingExternalReference is wrapped when an update arrives for a record that was never synchronized.
	ErrMissingExternalReference = errors.New("record has no external reference")
)

// Messages surfaced to the host platform.
const (
	MsgTimeout     = "The timeout elapsed while attempting to issue the request."
	msgTransport   = "A Web exception occurred while attempting to issue the request. %s: %s"
	msgParse       = "The external service returned an unreadable response. %s"
	MsgNoReference = "The record has no external reference; it was never synchronized."
)

// ErrorKind classifies an ExecutionError.
type ErrorKind string

const (
	KindTimeout      = ErrorKind(externalapi.KindTimeout)
	KindTransport    = ErrorKind(externalapi.KindTransport)
	KindParse        = ErrorKind(externalapi.KindParse)
	KindPrecondition ErrorKind = "precondition"
)

// ExecutionError aborts the host operation that raised the event.
// Message is shown to the user or administrator who triggered it.
type ExecutionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// executionError maps a failed outbound call to the error the host understands.
func executionError(err error) error {
	var apiErr *externalapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Kind {
	case externalapi.KindTimeout:
		return &ExecutionError{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	case externalapi.KindParse:
		return &ExecutionError{Kind: KindParse, Message: fmt.Sprintf(msgParse, apiErr.Cause()), Err: err}
	default:
		return &ExecutionError{
			Kind:    KindTransport,
			Message: fmt.Sprintf(msgTransport, apiErr.Cause(), apiErr.Body),
			Err:     err,
		}
	}
}

// Status is the outcome of a handled event.
type Status string

const (
	StatusSkipped Status = "skipped"
	StatusSynced  Status = "synced"
)

// Result describes a handled event.
type Result struct {
	Status     Status                  `json:"status"`
	RecordID   string                  `json:"record_id,omitempty"`
	ExternalID model.ExternalReference `json:"external_id,omitempty"`
}

func skipped() *Result {
	return &Result{Status: StatusSkipped}
}

// Bridge handles one kind of host event.
type Bridge interface {
	Handle(ctx context.Context, ec model.ExecutionContext, sink tracelog.Sink) (*Result, error)
}

// Options holds the host and payload settings shared by the bridges.
type Options struct {
	// EntityName is the logical name of the watched record type.
	EntityName string
	// PostImageName names the post-update snapshot carrying the external reference.
	PostImageName string
	// CreateResponse is sent as the Response field of the create payload.
	CreateResponse string
}

// watchedTarget extracts the typed target of an event. ok is false when the event must be ignored.
func watchedTarget(ec model.ExecutionContext, entityName string) (inq model.Inquiry, ok bool, err error) {
	target, found := ec.Target()
	if !found {
		return model.Inquiry{}, false, nil
	}
	inq, err = model.InquiryFromEntity(target, entityName)
	if errors.Is(err, model.ErrWrongRecordType) {
		return model.Inquiry{}, false, nil
	}
	if err != nil {
		return model.Inquiry{}, false, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return inq, true, nil
}

func startSpan(ctx context.Context, name string, ec model.ExecutionContext) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("host.message", ec.MessageName),
		attribute.String("host.entity", ec.PrimaryEntityName),
		attribute.String("host.correlation_id", ec.CorrelationID),
	))
}

func endSpan(span trace.Span, res *Result, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if res != nil {
		span.SetAttributes(attribute.String("bridge.status", string(res.Status)))
	}
	span.End()
}

package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrWrongRecordType is returned when an event targets a record type other than the watched one.
	ErrWrongRecordType = errors.New("record is not of the watched type")
	// ErrInvalidRecordID is returned when the target record id is not a GUID.
	ErrInvalidRecordID = errors.New("record id is not a valid identifier")
)

// Entity is the untyped record view delivered by the host platform.
type Entity struct {
	LogicalName string         `json:"LogicalName"`
	ID          string         `json:"Id"`
	Attributes  map[string]any `json:"Attributes"`
}

// StringAttribute returns the named attribute as a string.
// A missing or null attribute yields an empty string.
func (e Entity) StringAttribute(name string) (string, error) {
	v, ok := e.Attributes[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("attribute %q: expected string, got %T", name, v)
	}
	return s, nil
}

// InputParameters carries the data passed in the host message request.
type InputParameters struct {
	Target *Entity `json:"Target,omitempty"`
}

// ExecutionContext is the event notification the host platform posts after a create or update.
type ExecutionContext struct {
	MessageName       string            `json:"MessageName"`
	PrimaryEntityName string            `json:"PrimaryEntityName"`
	CorrelationID     string            `json:"CorrelationId"`
	UserID            string            `json:"UserId"`
	InputParameters   InputParameters   `json:"InputParameters"`
	PreEntityImages   map[string]Entity `json:"PreEntityImages,omitempty"`
	PostEntityImages  map[string]Entity `json:"PostEntityImages,omitempty"`
}

// Target returns the entity the event was raised for, if the host supplied one.
func (c ExecutionContext) Target() (Entity, bool) {
	if c.InputParameters.Target == nil {
		return Entity{}, false
	}
	return *c.InputParameters.Target, true
}

// PostImage returns the named post-update snapshot.
func (c ExecutionContext) PostImage(name string) (Entity, bool) {
	img, ok := c.PostEntityImages[name]
	return img, ok
}

// InquiryFromEntity validates a host entity and converts it into an Inquiry.
// Entities of any other logical type are rejected with ErrWrongRecordType.
func InquiryFromEntity(e Entity, logicalName string) (Inquiry, error) {
	if e.LogicalName != logicalName {
		return Inquiry{}, ErrWrongRecordType
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		return Inquiry{}, fmt.Errorf("%w: %q", ErrInvalidRecordID, e.ID)
	}

	response, err := e.StringAttribute(AttrResponse)
	if err != nil {
		return Inquiry{}, err
	}
	externalID, err := e.StringAttribute(AttrExternalID)
	if err != nil {
		return Inquiry{}, err
	}

	return Inquiry{
		ID:          e.ID,
		LogicalName: e.LogicalName,
		Response:    response,
		ExternalID:  ExternalReference(externalID),
	}, nil
}

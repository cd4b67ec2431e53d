package model

import "time"

// Attribute names of the watched record type as exposed by the host platform.
const (
	AttrResponse   = "response"
	AttrExternalID = "external_id"
)

// ExternalReference is the identifier the external service assigned to a record.
type ExternalReference string

func (r ExternalReference) String() string {
	return string(r)
}

// Inquiry is the typed view of a watched record.
// It is only produced by InquiryFromEntity or by the record store, never from a raw attribute bag.
type Inquiry struct {
	ID          string            `json:"id"`
	LogicalName string            `json:"logical_name"`
	Response    string            `json:"response"`
	ExternalID  ExternalReference `json:"external_id"`
	ModifiedBy  string            `json:"modified_by,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ModifiedAt  time.Time         `json:"modified_at"`
}

// SyncPayload is the JSON body sent to the external service on create and update.
type SyncPayload struct {
	ID       string `json:"id"`
	Response string `json:"Response"`
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordID = "3f1c2a9e-6d55-4c1b-9a57-1e0c3b7d2f10"

func TestInquiryFromEntity(t *testing.T) {
	tests := []struct {
		name    string
		entity  Entity
		want    Inquiry
		wantErr error
		errMsg  string
	}{
		{
			name: "watched type",
			entity: Entity{
				LogicalName: "sa_inquiry",
				ID:          recordID,
				Attributes:  map[string]any{"response": "hello", "external_id": "ABC123"},
			},
			want: Inquiry{ID: recordID, LogicalName: "sa_inquiry", Response: "hello", ExternalID: "ABC123"},
		},
		{
			name:   "missing attributes are empty",
			entity: Entity{LogicalName: "sa_inquiry", ID: recordID},
			want:   Inquiry{ID: recordID, LogicalName: "sa_inquiry"},
		},
		{
			name:    "other type",
			entity:  Entity{LogicalName: "contact", ID: recordID},
			wantErr: ErrWrongRecordType,
		},
		{
			name:    "invalid id",
			entity:  Entity{LogicalName: "sa_inquiry", ID: "not-a-guid"},
			wantErr: ErrInvalidRecordID,
		},
		{
			name: "non string response",
			entity: Entity{
				LogicalName: "sa_inquiry",
				ID:          recordID,
				Attributes:  map[string]any{"response": 42.0},
			},
			errMsg: `attribute "response": expected string, got float64`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InquiryFromEntity(tt.entity, "sa_inquiry")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				assert.EqualError(t, err, tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExecutionContext_Decode(t *testing.T) {
	body := `{
		"MessageName": "Update",
		"PrimaryEntityName": "sa_inquiry",
		"CorrelationId": "c-1",
		"UserId": "u-1",
		"InputParameters": {"Target": {"LogicalName": "sa_inquiry", "Id": "` + recordID + `", "Attributes": {"response": "hello"}}},
		"PostEntityImages": {"postInquiry": {"LogicalName": "sa_inquiry", "Id": "` + recordID + `", "Attributes": {"external_id": "ABC123"}}}
	}`

	var ec ExecutionContext
	require.NoError(t, json.Unmarshal([]byte(body), &ec))

	target, ok := ec.Target()
	require.True(t, ok)
	assert.Equal(t, recordID, target.ID)

	img, ok := ec.PostImage("postInquiry")
	require.True(t, ok)
	ext, err := img.StringAttribute(AttrExternalID)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", ext)

	_, ok = ec.PostImage("other")
	assert.False(t, ok)
}

func TestExecutionContext_NoTarget(t *testing.T) {
	_, ok := ExecutionContext{}.Target()
	assert.False(t, ok)
}

func TestSyncPayload_JSON(t *testing.T) {
	b, err := json.Marshal(SyncPayload{ID: "X", Response: "frederick"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "X", "Response": "frederick"}`, string(b))
}

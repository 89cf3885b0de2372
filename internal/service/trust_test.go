//nolint:testpackage // Testing unexported helpers requires same package access
package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/jonesrussell/north-cloud/listening/internal/domain"
)

const trustBody = `{
	"hits": {
		"total": {"value": 4},
		"hits": [
			{"_id": "d1", "_source": {"message_text": "loan a", "trust_dimensions": "{\"Government\": \"Supportive\", \"Banks\": \"Distrustful\"}"}},
			{"_id": "d2", "_source": {"message_text": "loan b", "trust_dimensions": "{\"Government\": \"Supportive\"}"}},
			{"_id": "d3", "_source": {"message_text": "loan c", "trust_dimensions": "not valid json"}},
			{"_id": "d4", "_source": {"message_text": "loan d", "trust_dimensions": "{\"Government\": \"Distrustful\"}"}},
			{"_id": "d5", "_source": {"message_text": "loan e"}}
		]
	}
}`

func TestTrust_AggregatesTonesPerInstitution(t *testing.T) {
	mock := &mockSearchClient{queue: []mockResult{{body: trustBody}}}
	svc := newTestService(mock)

	resp, err := svc.Trust(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Dimensions) != 2 {
		t.Fatalf("dimensions = %d, want 2", len(resp.Dimensions))
	}

	// Government has 3 classifications, Banks 1; descending order.
	gov := resp.Dimensions[0]
	if gov.Institution != "Government" || gov.TotalCount != 3 {
		t.Fatalf("first dimension = %q/%d, want Government/3", gov.Institution, gov.TotalCount)
	}

	wantTones := []domain.ToneShare{
		{Tone: "Supportive", Count: 2, Percentage: 67},
		{Tone: "Distrustful", Count: 1, Percentage: 33},
	}
	if !reflect.DeepEqual(gov.Tones, wantTones) {
		t.Errorf("tones = %v, want %v", gov.Tones, wantTones)
	}
	if len(gov.Documents) != 3 {
		t.Errorf("documents = %d, want 3", len(gov.Documents))
	}

	banks := resp.Dimensions[1]
	if banks.Institution != "Banks" || banks.TotalCount != 1 {
		t.Errorf("second dimension = %q/%d, want Banks/1", banks.Institution, banks.TotalCount)
	}
}

func TestTrust_MalformedDimensionsSkipDocumentOnly(t *testing.T) {
	// All documents carry malformed or missing analysis; the view still
	// succeeds with an empty result.
	body := `{
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_id": "d1", "_source": {"message_text": "a", "trust_dimensions": "{broken"}},
				{"_id": "d2", "_source": {"message_text": "b"}}
			]
		}
	}`
	mock := &mockSearchClient{queue: []mockResult{{body: body}}}
	svc := newTestService(mock)

	resp, err := svc.Trust(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("malformed analysis fields must not fail the view: %v", err)
	}
	if len(resp.Dimensions) != 0 {
		t.Errorf("dimensions = %d, want none", len(resp.Dimensions))
	}
	if !resp.Success {
		t.Error("response should still report success")
	}
}

package endpoint

import (
	"testing"
)

func TestNewKeyRecord(t *testing.T) {
	r := NewKeyRecord()

	if r.Data != nil || r.Error != nil {
		t.Errorf("Expected no data or error, got %+v", r)
	}
	if r.PendingRequests != 0 || r.SuccessfulRequests != 0 || r.CompletedRequests != 0 {
		t.Errorf("Expected zero counters, got %+v", r)
	}
}

func TestKeyRecordTotalRequests(t *testing.T) {
	var r *KeyRecord
	if r.TotalRequests() != 0 {
		t.Errorf("Expected 0 for a nil record, got %d", r.TotalRequests())
	}

	r = &KeyRecord{SuccessfulRequests: 2, CompletedRequests: 5}
	if r.TotalRequests() != 5 {
		t.Errorf("Expected TotalRequests=5, got %d", r.TotalRequests())
	}
}

func TestKeyRecordClone(t *testing.T) {
	var missing *KeyRecord
	fresh := missing.clone()
	if fresh == nil || *fresh != *NewKeyRecord() {
		t.Errorf("Expected a fresh record, got %+v", fresh)
	}

	original := &KeyRecord{Data: "x", PendingRequests: 1}
	c := original.clone()
	if c == original {
		t.Error("Expected a new pointer")
	}
	c.PendingRequests++
	if original.PendingRequests != 1 {
		t.Errorf("Expected original untouched, got %d", original.PendingRequests)
	}
	if c.Data != "x" {
		t.Errorf("Expected data copied, got %v", c.Data)
	}
}

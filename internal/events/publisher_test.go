package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewEnvelope(t *testing.T) {
	at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.FixedZone("WAT", 3600))
	env := NewEnvelope(ArtisanRegistered, map[string]string{"id": "abc"}, at)

	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded["event"] != ArtisanRegistered {
		t.Errorf("event = %v", decoded["event"])
	}
	if decoded["version"] != float64(1) {
		t.Errorf("version = %v", decoded["version"])
	}
	if decoded["occurred_at"] != "2026-10-01T08:30:00Z" {
		t.Errorf("occurred_at = %v, want UTC RFC3339", decoded["occurred_at"])
	}
	data, ok := decoded["data"].(map[string]any)
	if !ok || data["id"] != "abc" {
		t.Errorf("data = %v", decoded["data"])
	}
}

func TestNopPublisher(t *testing.T) {
	var p Nop
	if err := p.Publish(context.Background(), ContactReceived, nil); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

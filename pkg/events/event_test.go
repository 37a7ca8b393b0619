package events

import (
	"encoding/json"
	"testing"
	"time"
)

type offerCreated struct {
	BaseEvent
	Country string `json:"country"`
}

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("ART", -3*3600))
	event := NewBaseEvent("financing.offer.created", "offer-1", "FinancingOffer", at)

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "financing.offer.created" {
		t.Errorf("EventType() = %q", event.EventType())
	}
	if event.AggregateID() != "offer-1" || event.AggregateType() != "FinancingOffer" {
		t.Errorf("aggregate = %s/%s", event.AggregateType(), event.AggregateID())
	}
	if !event.OccurredAt().Equal(at) || event.OccurredAt().Location() != time.UTC {
		t.Errorf("OccurredAt() = %v, want %v in UTC", event.OccurredAt(), at)
	}
	if other := NewBaseEvent("x", "y", "z", at); other.EventID() == event.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestNewEnvelope(t *testing.T) {
	event := offerCreated{
		BaseEvent: NewBaseEvent("financing.offer.created", "offer-1", "FinancingOffer", time.Now()),
		Country:   "AR",
	}

	env, err := NewEnvelope(event)
	if err != nil {
		t.Fatalf("NewEnvelope() error = %v", err)
	}
	if env.ID != event.EventID() || env.Type != event.EventType() {
		t.Errorf("envelope header mismatch: %+v", env)
	}

	var payload map[string]any
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["country"] != "AR" {
		t.Errorf("payload country = %v, want AR", payload["country"])
	}
	if len(payload) != 1 {
		t.Errorf("payload leaked unexported fields: %v", payload)
	}
}

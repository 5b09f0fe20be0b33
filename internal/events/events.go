package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
)

const EventTypeOfferDecided = "offer.decided"

// OfferDecided is published once a member's report is stored.
type OfferDecided struct {
	EventType  string         `json:"event_type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Report     *models.Report `json:"report"`
}

func NewOfferDecided(report *models.Report, at time.Time) OfferDecided {
	return OfferDecided{
		EventType:  EventTypeOfferDecided,
		OccurredAt: at.UTC(),
		Report:     report,
	}
}

func (e OfferDecided) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// NoopPublisher drops every event. Used when no message bus is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) Publish(ctx context.Context, report *models.Report) error {
	return nil
}

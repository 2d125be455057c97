package storage

import (
	"context"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// WebhookStore defines the surface the payment webhook reconciler needs:
// idempotent crediting plus durable parking of events it cannot apply.
type WebhookStore interface {
	LedgerSettler

	// ParkEvent durably stores an event for manual review. Parking the same
	// event twice is a safe overwrite.
	ParkEvent(ctx context.Context, event *models.ParkedEvent) error

	// ListParkedEvents retrieves parked events for operator review.
	ListParkedEvents(ctx context.Context, limit int32) ([]models.ParkedEvent, error)
}

package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
)

// eventTypeCheckoutCompleted is the only event type that moves credits.
const eventTypeCheckoutCompleted = "checkout.session.completed"

// Event is the payment provider's webhook envelope, reduced to the fields
// the reconciler reads.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

// EventData carries the purchase details.
type EventData struct {
	AccountID string `json:"account_id"`
	Credits   int64  `json:"credits"`
	OrderID   string `json:"order_id"`
}

// Outcome describes what the reconciler did with an event.
type Outcome string

const (
	// Applied means credits were added (or the event replayed a prior
	// application).
	Applied Outcome = "APPLIED"
	// Ignored means the event type carries no credits.
	Ignored Outcome = "IGNORED"
	// Parked means the event could not be applied and was stored for
	// review.
	Parked Outcome = "PARKED"
)

// Reconciler applies payment events to the credit ledger exactly once.
type Reconciler struct {
	Store storage.WebhookStore

	// Secret is the shared signing secret for incoming webhooks.
	Secret string

	// Tolerance bounds the accepted age of a signed timestamp.
	Tolerance time.Duration
}

// NewReconciler creates a new Reconciler.
func NewReconciler(store storage.WebhookStore, secret string, tolerance time.Duration) *Reconciler {
	return &Reconciler{
		Store:     store,
		Secret:    secret,
		Tolerance: tolerance,
	}
}

// Reconcile verifies the payload signature and applies the event. Keyed by
// the provider's event id, a resent event never credits twice. Events naming
// an unknown account are parked rather than rejected, so the provider stops
// redelivering and an operator can reconcile by hand.
func (r *Reconciler) Reconcile(ctx context.Context, payload []byte, signatureHeader string) (Outcome, error) {
	if err := VerifySignature(payload, signatureHeader, r.Secret, r.Tolerance, time.Now()); err != nil {
		return "", err
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return "", fmt.Errorf("failed to parse webhook event: %w", err)
	}
	if event.ID == "" {
		return "", errors.New("webhook event has no id")
	}

	if event.Type != eventTypeCheckoutCompleted {
		slog.Info("ignoring webhook event", "eventId", event.ID, "type", event.Type)
		return Ignored, nil
	}

	if event.Data.AccountID == "" || event.Data.Credits <= 0 {
		return r.park(ctx, &event, payload, "missing account or non-positive credits")
	}

	description := fmt.Sprintf("Purchase of %d credits (order %s)", event.Data.Credits, event.Data.OrderID)
	entry, err := r.Store.Credit(ctx, event.Data.AccountID, event.Data.Credits, event.ID, description)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return r.park(ctx, &event, payload, "account not found")
		}
		return "", fmt.Errorf("failed to apply webhook credit: %w", err)
	}

	slog.Info("applied webhook credit",
		"eventId", event.ID,
		"accountId", event.Data.AccountID,
		"entryId", entry.EntryID,
		"amount", entry.Amount,
	)
	return Applied, nil
}

func (r *Reconciler) park(ctx context.Context, event *Event, payload []byte, reason string) (Outcome, error) {
	parked := &models.ParkedEvent{
		EventID:    event.ID,
		EventType:  event.Type,
		AccountRef: event.Data.AccountID,
		Amount:     event.Data.Credits,
		Payload:    string(payload),
		Reason:     reason,
		ParkedAt:   time.Now(),
	}
	if err := r.Store.ParkEvent(ctx, parked); err != nil {
		return "", fmt.Errorf("failed to park webhook event: %w", err)
	}

	slog.Warn("parked webhook event", "eventId", event.ID, "reason", reason)
	return Parked, nil
}

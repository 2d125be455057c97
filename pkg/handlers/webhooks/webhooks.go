package webhooks

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/codesnap/conversion-pipeline/pkg/webhook"
)

// signatureHeader is the header carrying the provider's payload signature.
const signatureHeader = "X-Payment-Signature"

// maxPayloadBytes bounds webhook request bodies.
const maxPayloadBytes = 1 << 20

// parkedPageSize caps parked event listings.
const parkedPageSize = 100

// Handler receives payment provider webhooks.
type Handler struct {
	Reconciler *webhook.Reconciler
	Store      storage.WebhookStore
}

// NewHandler creates a new Handler.
func NewHandler(reconciler *webhook.Reconciler, store storage.WebhookStore) *Handler {
	return &Handler{Reconciler: reconciler, Store: store}
}

// HandlePaymentEvent verifies and applies one payment event. Parked and
// ignored events still return 200 so the provider stops redelivering;
// only signature failures and transient errors ask for a retry.
func (h *Handler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	outcome, err := h.Reconciler.Reconcile(r.Context(), payload, r.Header.Get(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrInvalidSignature), errors.Is(err, webhook.ErrStaleTimestamp):
			http.Error(w, "Invalid signature", http.StatusBadRequest)
		default:
			slog.Error("failed to reconcile payment event", "error", err)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"outcome":"` + string(outcome) + `"}`))
}

// ListParkedEvents lists events held for manual review.
func (h *Handler) ListParkedEvents(w http.ResponseWriter, r *http.Request) {
	parked, err := h.Store.ListParkedEvents(r.Context(), parkedPageSize)
	if err != nil {
		slog.Error("failed to list parked events", "error", err)
		http.Error(w, "Failed to retrieve parked events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(parked); err != nil {
		http.Error(w, "Failed to write response", http.StatusInternalServerError)
	}
}

package conversions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/codesnap/conversion-pipeline/pkg/api"
	"github.com/codesnap/conversion-pipeline/pkg/mapping"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
	"github.com/google/uuid"
)

// Framework and CSS framework values the generator accepts.
var (
	supportedFrameworks = map[string]bool{
		"html":   true,
		"react":  true,
		"vue":    true,
		"svelte": true,
	}
	supportedCSSFrameworks = map[string]bool{
		"":          true,
		"tailwind":  true,
		"bootstrap": true,
	}
)

// Handler holds the dependencies for conversion-related handlers.
type Handler struct {
	Store     storage.ApiStore
	Queue     queue.TaskQueue
	Publisher websockets.Publisher

	// CreditCost is the price of one conversion, in hundredths of a credit.
	CreditCost int64
	// MaxRetries caps worker retry attempts per conversion.
	MaxRetries int32
}

// NewHandler creates a new Handler.
func NewHandler(store storage.ApiStore, q queue.TaskQueue, publisher websockets.Publisher, creditCost int64, maxRetries int32) *Handler {
	if publisher == nil {
		publisher = &websockets.NoOpPublisher{}
	}
	return &Handler{
		Store:      store,
		Queue:      q,
		Publisher:  publisher,
		CreditCost: creditCost,
		MaxRetries: maxRetries,
	}
}

// SubmitConversion handles the logic for submitting a new conversion. The
// credit hold and the PENDING record commit atomically; only then is the
// task enqueued.
func (h *Handler) SubmitConversion(w http.ResponseWriter, r *http.Request) {
	var newConv api.NewConversion
	if err := json.NewDecoder(r.Body).Decode(&newConv); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newConv.AccountId == "" || newConv.ImageRef == "" || newConv.Framework == "" {
		http.Error(w, "account_id, image_ref and framework are required", http.StatusBadRequest)
		return
	}
	if !supportedFrameworks[newConv.Framework] {
		http.Error(w, fmt.Sprintf("Unsupported framework: %s", newConv.Framework), http.StatusBadRequest)
		return
	}
	if !supportedCSSFrameworks[newConv.CSSFramework] {
		http.Error(w, fmt.Sprintf("Unsupported css_framework: %s", newConv.CSSFramework), http.StatusBadRequest)
		return
	}

	domainConv := mapping.ToDomainNewConversion(&newConv)
	domainConv.Id = uuid.New().String()
	domainConv.CreditCost = h.CreditCost
	domainConv.MaxRetries = h.MaxRetries

	createdConv, err := h.Store.CreateConversion(r.Context(), domainConv)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientCredits):
			http.Error(w, "Insufficient credits", http.StatusPaymentRequired)
		case errors.Is(err, storage.ErrAccountNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		default:
			slog.Error("failed to create conversion", "error", err)
			http.Error(w, "Failed to submit conversion", http.StatusInternalServerError)
		}
		return
	}

	// The job stays PENDING; past the stuck threshold the sweeper re-enqueues
	// it.
	if err := h.Queue.Enqueue(r.Context(), createdConv.Id, 0); err != nil {
		slog.Error("conversion created but failed to enqueue", "jobId", createdConv.Id, "error", err)
	}

	h.publishBalance(r, createdConv.AccountId)

	apiConv := mapping.ToApiConversion(createdConv)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiConv); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetConversionById handles the logic for retrieving a conversion by its ID.
func (h *Handler) GetConversionById(w http.ResponseWriter, r *http.Request, conversionId string) {
	domainConv, err := h.Store.GetConversion(r.Context(), conversionId)
	if err != nil {
		if errors.Is(err, storage.ErrConversionNotFound) {
			http.Error(w, "Conversion not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve conversion: %v", err), http.StatusInternalServerError)
		return
	}

	apiConv := mapping.ToApiConversion(domainConv)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiConv); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// CancelConversionById handles the logic for cancelling a conversion.
func (h *Handler) CancelConversionById(w http.ResponseWriter, r *http.Request, conversionId string) {
	err := h.Store.CancelConversion(r.Context(), conversionId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyTerminal):
			http.Error(w, "Conversion already finished", http.StatusConflict)
		case errors.Is(err, storage.ErrConversionConflict):
			http.Error(w, "Conversion was updated concurrently, retry cancellation", http.StatusConflict)
		case errors.Is(err, storage.ErrConversionNotFound):
			http.Error(w, "Conversion not found", http.StatusNotFound)
		default:
			slog.Error("failed to cancel conversion", "jobId", conversionId, "error", err)
			http.Error(w, "Failed to cancel conversion", http.StatusInternalServerError)
		}
		return
	}

	conv, err := h.Store.GetConversion(r.Context(), conversionId)
	if err == nil {
		h.publishBalance(r, conv.AccountId)
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListConversionsByAccount handles the logic for listing an account's
// conversions.
func (h *Handler) ListConversionsByAccount(w http.ResponseWriter, r *http.Request, accountId string) {
	domainConvs, err := h.Store.ListConversionsByAccount(r.Context(), accountId)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve conversions: %v", err), http.StatusInternalServerError)
		return
	}

	apiConvs := make([]*api.Conversion, len(domainConvs))
	for i, conv := range domainConvs {
		apiConvs[i] = mapping.ToApiConversion(&conv)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiConvs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// publishBalance pushes the account's new credit position to listeners.
// Failures are logged, never surfaced to the request.
func (h *Handler) publishBalance(r *http.Request, accountID string) {
	balance, err := h.Store.GetBalance(r.Context(), accountID)
	if err != nil {
		slog.Error("failed to get balance for websocket message", "accountId", accountID, "error", err)
		return
	}
	msg := websockets.Message{
		Type: websockets.MessageTypeBalanceUpdate,
		Payload: websockets.BalanceUpdatePayload{
			AccountID: balance.AccountId,
			Total:     balance.Total,
			Reserved:  balance.Reserved,
			Available: balance.Available,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish websocket message", "error", err)
	}
}

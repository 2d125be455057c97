package webhooks

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	storage_mocks "github.com/codesnap/conversion-pipeline/pkg/storage/mocks"
	"github.com/codesnap/conversion-pipeline/pkg/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "whsec_test"

func newTestHandler(store *storage_mocks.WebhookStore) *Handler {
	return NewHandler(webhook.NewReconciler(store, testSecret, 5*time.Minute), store)
}

func postEvent(handler *Handler, body, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader([]byte(body)))
	req.Header.Set("X-Payment-Signature", header)
	rr := httptest.NewRecorder()
	handler.HandlePaymentEvent(rr, req)
	return rr
}

func TestHandlePaymentEvent(t *testing.T) {
	checkout := `{"id":"evt_1","type":"checkout.session.completed","created":1700000000,"data":{"account_id":"acct1","credits":500,"order_id":"order_9"}}`

	t.Run("Applies Valid Event", func(t *testing.T) {
		mockStorage := new(storage_mocks.WebhookStore)
		handler := newTestHandler(mockStorage)

		entry := &models.LedgerEntry{EntryID: "e1", Amount: 500, Kind: models.KindCredit}
		mockStorage.On("Credit", mock.Anything, "acct1", int64(500), "evt_1", mock.AnythingOfType("string")).Return(entry, nil)

		rr := postEvent(handler, checkout, webhook.SignPayload([]byte(checkout), testSecret, time.Now()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"outcome":"APPLIED"}`, rr.Body.String())
	})

	t.Run("Bad Signature Is Rejected", func(t *testing.T) {
		mockStorage := new(storage_mocks.WebhookStore)
		handler := newTestHandler(mockStorage)

		rr := postEvent(handler, checkout, webhook.SignPayload([]byte(checkout), "whsec_wrong", time.Now()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "Credit")
	})

	t.Run("Parked Event Still Returns 200", func(t *testing.T) {
		mockStorage := new(storage_mocks.WebhookStore)
		handler := newTestHandler(mockStorage)

		mockStorage.On("Credit", mock.Anything, "acct1", int64(500), "evt_1", mock.AnythingOfType("string")).Return(nil, storage.ErrAccountNotFound)
		mockStorage.On("ParkEvent", mock.Anything, mock.Anything).Return(nil)

		rr := postEvent(handler, checkout, webhook.SignPayload([]byte(checkout), testSecret, time.Now()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"outcome":"PARKED"}`, rr.Body.String())
	})

	t.Run("Ignored Event Type Returns 200", func(t *testing.T) {
		mockStorage := new(storage_mocks.WebhookStore)
		handler := newTestHandler(mockStorage)

		body := `{"id":"evt_2","type":"invoice.paid","data":{}}`
		rr := postEvent(handler, body, webhook.SignPayload([]byte(body), testSecret, time.Now()))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"outcome":"IGNORED"}`, rr.Body.String())
	})
}

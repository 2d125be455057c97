package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codesnap/conversion-pipeline/pkg/api"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	storage_mocks "github.com/codesnap/conversion-pipeline/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateAccount(t *testing.T) {
	t.Run("Success With Signup Grant", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewHandler(mockStorage, 300)

		created := &models.Account{AccountId: "acct1", Email: "user@example.com", Balance: 300, Version: 1}
		mockStorage.On("CreateAccount", mock.Anything, mock.MatchedBy(func(account *models.Account) bool {
			return account.Email == "user@example.com" && account.Balance == 300
		}), int64(300)).Return(created, nil)

		body, _ := json.Marshal(&api.NewAccount{AccountId: "acct1", Email: "user@example.com"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Account
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(300), got.Balance)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Duplicate Account", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewHandler(mockStorage, 300)

		mockStorage.On("CreateAccount", mock.Anything, mock.Anything, int64(300)).Return(nil, storage.ErrAccountExists)

		body, _ := json.Marshal(&api.NewAccount{AccountId: "acct1", Email: "user@example.com"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Missing Email", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewHandler(mockStorage, 300)

		body, _ := json.Marshal(&api.NewAccount{AccountId: "acct1"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateAccount")
	})
}

func TestListAccounts(t *testing.T) {
	mockStorage := new(storage_mocks.ApiStore)
	handler := NewHandler(mockStorage, 300)

	accounts := []models.Account{
		{AccountId: "acct1", Email: "a@example.com", Balance: 300},
		{AccountId: "acct2", Email: "b@example.com", Balance: 1000, Reserved: 100},
	}
	mockStorage.On("ListAccounts", mock.Anything).Return(accounts, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()

	handler.ListAccounts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Account
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(100), got[1].Reserved)
}

func TestGetBalanceByAccountId(t *testing.T) {
	t.Run("Reports Position", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewHandler(mockStorage, 300)

		balance := &models.Balance{AccountId: "acct1", Total: 1000, Reserved: 300, Available: 700}
		mockStorage.On("GetBalance", mock.Anything, "acct1").Return(balance, nil)

		req := httptest.NewRequest(http.MethodGet, "/accounts/acct1/balance", nil)
		rr := httptest.NewRecorder()

		handler.GetBalanceByAccountId(rr, req, "acct1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Balance
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(1000), got.Total)
		assert.Equal(t, int64(300), got.Reserved)
		assert.Equal(t, int64(700), got.Available)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := NewHandler(mockStorage, 300)

		mockStorage.On("GetBalance", mock.Anything, "ghost").Return(nil, storage.ErrAccountNotFound)

		req := httptest.NewRequest(http.MethodGet, "/accounts/ghost/balance", nil)
		rr := httptest.NewRecorder()

		handler.GetBalanceByAccountId(rr, req, "ghost")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListLedgerByAccountId(t *testing.T) {
	mockStorage := new(storage_mocks.ApiStore)
	handler := NewHandler(mockStorage, 300)

	entries := []models.LedgerEntry{
		{EntryID: "e1", AccountID: "acct1", Amount: 300, Kind: models.KindCredit},
		{EntryID: "e2", AccountID: "acct1", Amount: -100, Kind: models.KindReserve},
	}
	mockStorage.On("ListAccountEntries", mock.Anything, "acct1", int32(100)).Return(entries, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acct1/ledger", nil)
	rr := httptest.NewRecorder()

	handler.ListLedgerByAccountId(rr, req, "acct1")

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.LedgerEntry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(-100), got[1].Amount)
}

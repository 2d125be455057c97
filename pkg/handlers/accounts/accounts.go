package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/codesnap/conversion-pipeline/pkg/api"
	"github.com/codesnap/conversion-pipeline/pkg/mapping"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/google/uuid"
)

// ledgerPageSize caps ledger listings returned by the API.
const ledgerPageSize = 100

// Handler holds the dependencies for account-related handlers.
type Handler struct {
	Store storage.ApiStore

	// SignupGrant is the free credit granted to new accounts, in hundredths
	// of a credit.
	SignupGrant int64
}

// NewHandler creates a new Handler.
func NewHandler(store storage.ApiStore, signupGrant int64) *Handler {
	return &Handler{Store: store, SignupGrant: signupGrant}
}

// CreateAccount handles the logic for creating a new account. The account
// record and its signup grant ledger entry commit together.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newAccount.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	accountID := newAccount.AccountId
	if accountID == "" {
		accountID = uuid.New().String()
	}

	domainAccount := &models.Account{
		AccountId: accountID,
		Email:     newAccount.Email,
		Balance:   h.SignupGrant,
		Version:   1,
	}

	createdAccount, err := h.Store.CreateAccount(r.Context(), domainAccount, h.SignupGrant)
	if err != nil {
		if errors.Is(err, storage.ErrAccountExists) {
			http.Error(w, "Account already exists", http.StatusConflict)
			return
		}
		slog.Error("failed to create account", "error", err)
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	apiAccount := mapping.ToApiAccount(createdAccount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListAccounts handles the logic for listing all accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	domainAccounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve accounts: %v", err), http.StatusInternalServerError)
		return
	}

	apiAccounts := make([]*api.Account, len(domainAccounts))
	for i, account := range domainAccounts {
		apiAccounts[i] = mapping.ToApiAccount(&account)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccounts); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccountById handles the logic for retrieving an account.
func (h *Handler) GetAccountById(w http.ResponseWriter, r *http.Request, accountId string) {
	domainAccount, err := h.Store.GetAccount(r.Context(), accountId)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		return
	}

	apiAccount := mapping.ToApiAccount(domainAccount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetBalanceByAccountId handles the logic for retrieving an account's credit
// position.
func (h *Handler) GetBalanceByAccountId(w http.ResponseWriter, r *http.Request, accountId string) {
	domainBalance, err := h.Store.GetBalance(r.Context(), accountId)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve balance: %v", err), http.StatusInternalServerError)
		return
	}

	apiBalance := mapping.ToApiBalance(domainBalance)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiBalance); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListLedgerByAccountId handles the logic for listing an account's ledger
// entries, newest first.
func (h *Handler) ListLedgerByAccountId(w http.ResponseWriter, r *http.Request, accountId string) {
	domainEntries, err := h.Store.ListAccountEntries(r.Context(), accountId, ledgerPageSize)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i, entry := range domainEntries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListLedger handles the logic for listing recent ledger entries across all
// accounts.
func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	domainEntries, err := h.Store.ListLedgerEntries(r.Context(), ledgerPageSize)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i, entry := range domainEntries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

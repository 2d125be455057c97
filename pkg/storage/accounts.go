package storage

import (
	"context"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// AccountStore defines the interface for managing accounts.
type AccountStore interface {
	// GetAccount retrieves an account by its ID.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// CreateAccount creates a new account and records its signup credit grant
	// in the ledger.
	CreateAccount(ctx context.Context, account *models.Account, signupGrant int64) (*models.Account, error)

	// ListAccounts retrieves all accounts from the storage.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}

package storage

import (
	"context"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// LedgerReader defines the interface for reading ledger data and balances.
type LedgerReader interface {
	// GetBalance returns the account's credit position as of all committed
	// entries at call time.
	GetBalance(ctx context.Context, accountID string) (*models.Balance, error)

	// ListLedgerEntries retrieves the most recent ledger entries across all
	// accounts.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)

	// ListAccountEntries retrieves the most recent ledger entries for one
	// account.
	ListAccountEntries(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error)
}

// LedgerSettler defines the privileged mutations of the credit ledger. Both
// operations are idempotent: a redelivered settlement or payment event
// returns the originally written entry without side effects.
type LedgerSettler interface {
	// Settle converts a conversion's RESERVE hold into a terminal DEBIT or
	// RELEASE entry, keyed by "job:{id}:settle". Calling again with the same
	// outcome returns the original entry; a conflicting outcome fails with
	// ErrSettlementConflict.
	Settle(ctx context.Context, conversionID string, outcome models.SettlementOutcome) (*models.LedgerEntry, error)

	// Credit adds purchased credits to an account, keyed by the payment
	// provider's event id. Resending the same event never double-credits.
	Credit(ctx context.Context, accountID string, amount int64, eventID, description string) (*models.LedgerEntry, error)
}

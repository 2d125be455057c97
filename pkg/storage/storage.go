package storage

import (
	"context"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// ApiStore defines the complete set of non-privileged operations needed by
// the API. It composes other interfaces to provide a clear boundary for the
// API's data access.
type ApiStore interface {
	ConversionStore
	AccountStore
	LedgerReader
}

// WorkerStore defines the set of operations conversion workers use. Workers
// never create conversions or accounts; they only advance claimed jobs and
// read balances for notifications.
type WorkerStore interface {
	ConversionWorkerOps

	GetConversion(ctx context.Context, id string) (*models.Conversion, error)
	GetBalance(ctx context.Context, accountID string) (*models.Balance, error)
}

// Storage defines the root interface for the entire data layer. It composes
// all available storage operations. Components should depend on the more
// granular interfaces (ApiStore, WorkerStore, WebhookStore) instead of this
// one.
type Storage interface {
	ApiStore
	ConversionWorkerOps
	LedgerSettler
	WebhookStore
	WebSocketManager
}

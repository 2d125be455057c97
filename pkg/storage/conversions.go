package storage

import (
	"context"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// ConversionReader defines the interface for reading conversion data.
type ConversionReader interface {
	// GetConversion retrieves a conversion by its ID.
	GetConversion(ctx context.Context, id string) (*models.Conversion, error)

	// ListConversionsByAccount retrieves all conversions for an account.
	ListConversionsByAccount(ctx context.Context, accountID string) ([]models.Conversion, error)

	// GetStuckConversions retrieves conversions that have sat in PENDING or
	// RUNNING longer than maxAge: a worker died before settling, or the job
	// was never enqueued.
	GetStuckConversions(ctx context.Context, maxAge time.Duration) ([]models.Conversion, error)
}

// ConversionManager defines the interface for creating and cancelling
// conversions. This is the surface the API service uses.
type ConversionManager interface {
	// CreateConversion atomically creates a PENDING conversion and places a
	// RESERVE hold on the account's credits. It fails with
	// ErrInsufficientCredits when the available balance cannot cover the cost.
	CreateConversion(ctx context.Context, conv *models.Conversion) (*models.Conversion, error)

	// CancelConversion cancels a PENDING or RUNNING conversion and releases
	// its hold. It fails with ErrAlreadyTerminal when the conversion already
	// finished, and with ErrConversionConflict when a concurrent transition
	// bumped the version but left the conversion cancellable.
	CancelConversion(ctx context.Context, id string) error
}

// ConversionWorkerOps defines the privileged transitions only workers drive.
// Every operation is a single atomic, version-fenced write.
type ConversionWorkerOps interface {
	// ClaimConversion transitions PENDING (or a redelivered RUNNING) to
	// RUNNING. A stale version fails with ErrStaleClaim; the caller must drop
	// the job rather than retry the claim.
	ClaimConversion(ctx context.Context, id string, version int64) (*models.Conversion, error)

	// RetryConversion transitions RUNNING back to PENDING with an incremented
	// retry count. The queue, not the store, enforces the backoff delay.
	RetryConversion(ctx context.Context, conv *models.Conversion, reason string) (*models.Conversion, error)

	// CompleteConversion transitions RUNNING to DONE, records the result and
	// settles the hold as a DEBIT, all in one transaction. Redelivered calls
	// are no-ops once the settlement is recorded.
	CompleteConversion(ctx context.Context, conv *models.Conversion, result *models.GeneratedCode, tokensUsed int32, processingMs int64) error

	// FailConversion transitions RUNNING to FAILED and settles the hold as a
	// RELEASE, all in one transaction, so users are never charged for
	// unsuccessful conversions.
	FailConversion(ctx context.Context, conv *models.Conversion, reason string) error
}

// ConversionStore combines the reader and manager interfaces.
type ConversionStore interface {
	ConversionReader
	ConversionManager
}

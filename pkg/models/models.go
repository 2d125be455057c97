package models

import (
	"time"
)

// ConversionStatus defines the possible states of a conversion job.
type ConversionStatus string

const (
	PENDING   ConversionStatus = "PENDING"
	RUNNING   ConversionStatus = "RUNNING"
	DONE      ConversionStatus = "DONE"
	FAILED    ConversionStatus = "FAILED"
	CANCELLED ConversionStatus = "CANCELLED"
)

// validTransitions encodes the conversion state machine. A transition absent
// from this table must be rejected by the store.
var validTransitions = map[ConversionStatus]map[ConversionStatus]bool{
	PENDING: {
		RUNNING:   true,
		CANCELLED: true,
	},
	RUNNING: {
		DONE:      true,
		PENDING:   true, // retry
		FAILED:    true,
		CANCELLED: true,
	},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to ConversionStatus) bool {
	return validTransitions[from][to]
}

// IsTerminal reports whether a status is final. Terminal conversions never
// change again.
func (s ConversionStatus) IsTerminal() bool {
	return s == DONE || s == FAILED || s == CANCELLED
}

// EntryKind defines the kind of a ledger entry.
type EntryKind string

const (
	// KindReserve places a hold on credits when a conversion is accepted.
	KindReserve EntryKind = "RESERVE"
	// KindDebit converts a hold into a final charge on success.
	KindDebit EntryKind = "DEBIT"
	// KindRelease returns a hold to the account on failure or cancellation.
	KindRelease EntryKind = "RELEASE"
	// KindCredit adds purchased (or granted) credits to an account.
	KindCredit EntryKind = "CREDIT"
)

// SettlementOutcome is the terminal ledger disposition of a conversion's hold:
// KindDebit or KindRelease.
type SettlementOutcome = EntryKind

// Conversion represents one screenshot-to-code conversion job.
// Credit amounts are in hundredths of a credit. The version field increments
// on every state transition and fences worker claims.
type Conversion struct {
	Id           string           `dynamodbav:"id"`
	AccountId    string           `dynamodbav:"account_id"`
	ImageRef     string           `dynamodbav:"image_ref"`
	Filename     string           `dynamodbav:"filename"`
	Framework    string           `dynamodbav:"framework"`
	CSSFramework string           `dynamodbav:"css_framework,omitempty"`
	Status       ConversionStatus `dynamodbav:"status"`
	ErrorMessage string           `dynamodbav:"error_message,omitempty"`
	RetryCount   int32            `dynamodbav:"retry_count"`
	MaxRetries   int32            `dynamodbav:"max_retries"`
	CreditCost   int64            `dynamodbav:"credit_cost"`
	Result       *GeneratedCode   `dynamodbav:"result,omitempty"`
	TokensUsed   int32            `dynamodbav:"tokens_used,omitempty"`
	ProcessingMs int64            `dynamodbav:"processing_ms,omitempty"`
	Version      int64            `dynamodbav:"version"`
	CreatedAt    time.Time        `dynamodbav:"created_at"`
	UpdatedAt    time.Time        `dynamodbav:"updated_at"`
}

// GeneratedCode holds the output of a successful conversion.
type GeneratedCode struct {
	HTML string `dynamodbav:"html" json:"html"`
	CSS  string `dynamodbav:"css,omitempty" json:"css,omitempty"`
	JS   string `dynamodbav:"js,omitempty" json:"js,omitempty"`
}

// Account represents a user account's credit position. Balance and Reserved
// are a projection of the ledger, updated in the same database transaction as
// every entry insert; Version fences concurrent updates.
type Account struct {
	AccountId string    `json:"account_id" dynamodbav:"account_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Reserved  int64     `json:"reserved" dynamodbav:"reserved"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Balance is the spendable-credit view of an account. Total includes credits
// still held by open reservations; Available is what a new reservation may
// draw on.
type Balance struct {
	AccountId string `json:"account_id"`
	Total     int64  `json:"total"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}

// LedgerEntry is a single immutable entry in the credit ledger. Amount is
// signed: CREDIT and RELEASE entries are positive, RESERVE and DEBIT negative.
type LedgerEntry struct {
	EntryID     string    `dynamodbav:"entry_id"`
	AccountID   string    `dynamodbav:"account_id"`
	Amount      int64     `dynamodbav:"amount"`
	Kind        EntryKind `dynamodbav:"kind"`
	Reference   string    `dynamodbav:"reference"`
	Description string    `dynamodbav:"description"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	GSI1PK      string    `dynamodbav:"gsi1pk"`
}

// IdempotencyRecord marks a settlement or payment event as applied. Key is
// either "job:{id}:settle" or a payment provider event id; a second attempt
// with the same key replays the recorded outcome instead of re-applying it.
type IdempotencyRecord struct {
	Key       string    `dynamodbav:"idem_key"`
	Outcome   EntryKind `dynamodbav:"outcome"`
	EntryID   string    `dynamodbav:"entry_id"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// SettleKey builds the idempotency key guarding a conversion's settlement.
func SettleKey(conversionID string) string {
	return "job:" + conversionID + ":settle"
}

// ParkedEvent is a payment event that could not be applied (for example the
// account it references does not exist) and is held for manual review.
type ParkedEvent struct {
	EventID    string    `dynamodbav:"event_id"`
	EventType  string    `dynamodbav:"event_type"`
	AccountRef string    `dynamodbav:"account_ref"`
	Amount     int64     `dynamodbav:"amount"`
	Payload    string    `dynamodbav:"payload"`
	Reason     string    `dynamodbav:"reason"`
	ParkedAt   time.Time `dynamodbav:"parked_at"`
}

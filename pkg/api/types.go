// Package api holds the JSON types exchanged over the HTTP API. They are
// deliberately separate from the domain models so storage concerns never leak
// into responses.
package api

import "time"

// NewConversion is the request body for submitting a conversion.
type NewConversion struct {
	AccountId    string `json:"account_id"`
	ImageRef     string `json:"image_ref"`
	Filename     string `json:"filename,omitempty"`
	Framework    string `json:"framework"`
	CSSFramework string `json:"css_framework,omitempty"`
}

// Conversion is the API view of a conversion job.
type Conversion struct {
	Id           string         `json:"id"`
	AccountId    string         `json:"account_id"`
	ImageRef     string         `json:"image_ref"`
	Filename     string         `json:"filename,omitempty"`
	Framework    string         `json:"framework"`
	CSSFramework string         `json:"css_framework,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error,omitempty"`
	RetryCount   int32          `json:"retry_count"`
	CreditCost   int64          `json:"credit_cost"`
	Result       *GeneratedCode `json:"result,omitempty"`
	TokensUsed   int32          `json:"tokens_used,omitempty"`
	ProcessingMs int64          `json:"processing_ms,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// GeneratedCode is the generated output returned for finished conversions.
type GeneratedCode struct {
	HTML string `json:"html"`
	CSS  string `json:"css,omitempty"`
	JS   string `json:"js,omitempty"`
}

// NewAccount is the request body for creating an account.
type NewAccount struct {
	AccountId string `json:"account_id,omitempty"`
	Email     string `json:"email"`
}

// Account is the API view of an account.
type Account struct {
	AccountId string    `json:"account_id"`
	Email     string    `json:"email"`
	Balance   int64     `json:"balance"`
	Reserved  int64     `json:"reserved"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance is the API view of an account's credit position.
type Balance struct {
	AccountId string `json:"account_id"`
	Total     int64  `json:"total"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}

// LedgerEntry is the API view of a single ledger entry.
type LedgerEntry struct {
	EntryId     string    `json:"entry_id"`
	AccountId   string    `json:"account_id"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Error is the standard error response body.
type Error struct {
	Message string `json:"message"`
}

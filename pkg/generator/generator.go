package generator

import (
	"context"
	"fmt"

	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// ErrorClass describes how a generation failure should be handled upstream.
type ErrorClass string

const (
	// Timeout means the generation ran past its deadline. Retryable.
	Timeout ErrorClass = "TIMEOUT"
	// Transient covers rate limits, 5xx responses and network failures.
	// Retryable.
	Transient ErrorClass = "TRANSIENT"
	// Permanent covers rejected inputs and any failure a retry cannot fix.
	Permanent ErrorClass = "PERMANENT"
)

// Error is a classified generation failure.
type Error struct {
	Class   ErrorClass
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s: %s: %v", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("generation %s: %s", e.Class, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error class permits another attempt.
func (e *Error) Retryable() bool {
	return e.Class != Permanent
}

// GenerationInput describes one screenshot to convert.
type GenerationInput struct {
	ImageRef     string
	Framework    string
	CSSFramework string
}

// GenerationResult is the produced code plus usage accounting.
type GenerationResult struct {
	Code         models.GeneratedCode
	TokensUsed   int32
	ProcessingMs int64
}

// Generator defines the interface for turning a screenshot into frontend
// code. Implementations must return a *Error so callers can distinguish
// retryable failures from permanent ones.
type Generator interface {
	Generate(ctx context.Context, input GenerationInput) (*GenerationResult, error)
}

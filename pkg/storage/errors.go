package storage

import "errors"

// ErrInsufficientCredits is returned when an account's available balance
// cannot cover a new reservation.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrStaleClaim is returned when a claim loses the version fence: another
// worker already advanced the conversion. Callers must drop the job.
var ErrStaleClaim = errors.New("stale claim: conversion already advanced")

// ErrSettlementConflict is returned when a settlement is retried with an
// outcome that conflicts with the one already recorded. This indicates a
// programming error and must be logged loudly.
var ErrSettlementConflict = errors.New("settlement outcome conflicts with recorded settlement")

// ErrAlreadyTerminal is returned when cancelling a conversion that already
// reached DONE, FAILED or CANCELLED.
var ErrAlreadyTerminal = errors.New("conversion already in a terminal state")

// ErrConversionConflict is returned when a write loses the version fence to
// a concurrent transition that left the conversion non-terminal. The caller
// may retry against the conversion's new version.
var ErrConversionConflict = errors.New("conversion modified concurrently")

// ErrAccountNotFound is returned when an operation references an account that
// does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account that already exists.
var ErrAccountExists = errors.New("account already exists")

// ErrConversionNotFound is returned when a conversion id cannot be resolved.
var ErrConversionNotFound = errors.New("conversion not found")

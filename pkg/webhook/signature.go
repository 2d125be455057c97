package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidSignature means the signature header is missing, malformed
	// or does not match the payload.
	ErrInvalidSignature = errors.New("webhook signature verification failed")

	// ErrStaleTimestamp means the signed timestamp falls outside the
	// accepted tolerance window.
	ErrStaleTimestamp = errors.New("webhook timestamp outside tolerance")
)

// VerifySignature checks a payment provider signature header of the form
// "t=<unix>,v1=<hex hmac>". The HMAC-SHA256 is computed over
// "<timestamp>.<payload>" with the shared secret. Comparison is constant
// time.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return ErrInvalidSignature
	}

	signedAt := time.Unix(timestamp, 0)
	if now.Sub(signedAt) > tolerance || signedAt.Sub(now) > tolerance {
		return ErrStaleTimestamp
	}

	expected := computeSignature(payload, timestamp, secret)
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrInvalidSignature
}

func computeSignature(payload []byte, timestamp int64, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload produces a signature header for the payload, signed at the
// given time. Used by tests and local tooling.
func SignPayload(payload []byte, secret string, at time.Time) string {
	timestamp := at.Unix()
	signature := computeSignature(payload, timestamp, secret)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(signature))
}

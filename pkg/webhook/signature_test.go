package webhook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	secret := "whsec_test"
	now := time.Unix(1700000000, 0)
	tolerance := 5 * time.Minute

	t.Run("Valid Signature", func(t *testing.T) {
		header := SignPayload(payload, secret, now)
		assert.NoError(t, VerifySignature(payload, header, secret, tolerance, now))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		header := SignPayload(payload, "whsec_other", now)
		assert.ErrorIs(t, VerifySignature(payload, header, secret, tolerance, now), ErrInvalidSignature)
	})

	t.Run("Tampered Payload", func(t *testing.T) {
		header := SignPayload(payload, secret, now)
		err := VerifySignature([]byte(`{"id":"evt_2"}`), header, secret, tolerance, now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Stale Timestamp", func(t *testing.T) {
		header := SignPayload(payload, secret, now.Add(-6*time.Minute))
		assert.ErrorIs(t, VerifySignature(payload, header, secret, tolerance, now), ErrStaleTimestamp)
	})

	t.Run("Future Timestamp", func(t *testing.T) {
		header := SignPayload(payload, secret, now.Add(10*time.Minute))
		assert.ErrorIs(t, VerifySignature(payload, header, secret, tolerance, now), ErrStaleTimestamp)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		assert.ErrorIs(t, VerifySignature(payload, "nonsense", secret, tolerance, now), ErrInvalidSignature)
		assert.ErrorIs(t, VerifySignature(payload, "", secret, tolerance, now), ErrInvalidSignature)
		assert.ErrorIs(t, VerifySignature(payload, "t=abc,v1=deadbeef", secret, tolerance, now), ErrInvalidSignature)
	})

	t.Run("Second Signature Accepted", func(t *testing.T) {
		valid := SignPayload(payload, secret, now)
		header := "t=1700000000,v1=deadbeef," + valid[len("t=1700000000,"):]
		assert.NoError(t, VerifySignature(payload, header, secret, tolerance, now))
	})
}

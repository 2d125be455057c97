package worker

import "time"

// Backoff shapes the delay between retry redeliveries.
type Backoff struct {
	Base   time.Duration
	Factor int32
	Cap    time.Duration
}

// DefaultBackoff is used when the pool is built without explicit retry
// configuration.
var DefaultBackoff = Backoff{
	Base:   5 * time.Second,
	Factor: 2,
	Cap:    5 * time.Minute,
}

// Delay returns the delay before the given attempt is redelivered. attempt
// is the retry count after the increment, so the first retry waits the base
// delay.
func (b Backoff) Delay(attempt int32) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := b.Base
	for i := int32(1); i < attempt; i++ {
		delay *= time.Duration(b.Factor)
		if delay >= b.Cap {
			return b.Cap
		}
	}

	if delay > b.Cap {
		return b.Cap
	}
	return delay
}

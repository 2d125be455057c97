package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/generator"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
)

// Pool consumes conversion tasks from the queue and drives them to a
// terminal state. Processing is idempotent end to end: any step may be
// redelivered and the version fence plus the settlement guard make the
// duplicate a no-op.
type Pool struct {
	Store     storage.WorkerStore
	Queue     queue.TaskQueue
	Generator generator.Generator
	Publisher websockets.Publisher

	// Workers is the number of concurrent consumers.
	Workers int

	// Backoff shapes retry redelivery delays.
	Backoff Backoff
}

// NewPool creates a new worker Pool. A zero backoff falls back to
// DefaultBackoff.
func NewPool(store storage.WorkerStore, q queue.TaskQueue, gen generator.Generator, pub websockets.Publisher, workers int, backoff Backoff) *Pool {
	if workers < 1 {
		workers = 1
	}
	if pub == nil {
		pub = &websockets.NoOpPublisher{}
	}
	if backoff.Base <= 0 {
		backoff = DefaultBackoff
	}
	return &Pool{
		Store:     store,
		Queue:     q,
		Generator: gen,
		Publisher: pub,
		Workers:   workers,
		Backoff:   backoff,
	}
}

// Run blocks until the context is cancelled, consuming tasks with the
// configured number of workers.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.consume(ctx, id)
		}(i)
	}
	wg.Wait()
}

func (p *Pool) consume(ctx context.Context, workerID int) {
	log := slog.With("worker", workerID)
	for {
		if ctx.Err() != nil {
			return
		}

		messages, err := p.Queue.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("failed to receive tasks", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range messages {
			if err := p.Process(ctx, msg); err != nil {
				// No ack: the queue redelivers and, past the redrive
				// policy, parks the task on the DLQ.
				log.Error("failed to process conversion", "jobId", msg.JobID, "error", err)
				continue
			}
			if err := p.Queue.Ack(ctx, msg); err != nil {
				log.Error("failed to ack task", "jobId", msg.JobID, "error", err)
			}
		}
	}
}

// Process handles a single delivered task. A nil return means the task is
// finished with and must be acknowledged; an error means delivery should be
// retried by the queue.
func (p *Pool) Process(ctx context.Context, msg queue.Message) error {
	log := slog.With("jobId", msg.JobID)

	conv, err := p.Store.GetConversion(ctx, msg.JobID)
	if err != nil {
		if errors.Is(err, storage.ErrConversionNotFound) {
			log.Warn("dropping task for unknown conversion")
			return nil
		}
		return fmt.Errorf("failed to load conversion: %w", err)
	}

	// Duplicate delivery of an already-settled job.
	if conv.Status.IsTerminal() {
		log.Info("dropping task for terminal conversion", "status", conv.Status)
		return nil
	}

	claimed, err := p.Store.ClaimConversion(ctx, conv.Id, conv.Version)
	if err != nil {
		if errors.Is(err, storage.ErrStaleClaim) {
			log.Info("dropping task after losing claim race")
			return nil
		}
		return fmt.Errorf("failed to claim conversion: %w", err)
	}

	start := time.Now()
	result, genErr := p.Generator.Generate(ctx, generator.GenerationInput{
		ImageRef:     claimed.ImageRef,
		Framework:    claimed.Framework,
		CSSFramework: claimed.CSSFramework,
	})
	generationDuration.Observe(time.Since(start).Seconds())

	if genErr != nil {
		return p.handleFailure(ctx, claimed, genErr)
	}

	if err := p.Store.CompleteConversion(ctx, claimed, &result.Code, result.TokensUsed, result.ProcessingMs); err != nil {
		switch {
		case errors.Is(err, storage.ErrStaleClaim):
			// Cancelled while we were generating; the hold is already
			// released.
			log.Info("dropping completion after losing claim race")
			return nil
		case errors.Is(err, storage.ErrSettlementConflict):
			settlementConflicts.Inc()
			log.Error("settlement conflict on completion, leaving task for the DLQ")
			return err
		default:
			return fmt.Errorf("failed to complete conversion: %w", err)
		}
	}

	conversionsProcessed.WithLabelValues("done").Inc()
	p.notify(ctx, claimed, models.DONE, "")
	return nil
}

// handleFailure retries retryable generation failures until MaxRetries is
// exhausted, then fails the conversion and releases its hold.
func (p *Pool) handleFailure(ctx context.Context, conv *models.Conversion, genErr error) error {
	log := slog.With("jobId", conv.Id)

	var classified *generator.Error
	retryable := errors.As(genErr, &classified) && classified.Retryable()

	if retryable && conv.RetryCount < conv.MaxRetries {
		updated, err := p.Store.RetryConversion(ctx, conv, genErr.Error())
		if err != nil {
			if errors.Is(err, storage.ErrStaleClaim) {
				log.Info("dropping retry after losing claim race")
				return nil
			}
			return fmt.Errorf("failed to requeue conversion: %w", err)
		}

		delay := p.Backoff.Delay(updated.RetryCount)
		if err := p.Queue.Enqueue(ctx, updated.Id, delay); err != nil {
			// Returning the error leaves the original delivery unacked, so
			// the queue redelivers and the job is claimed at its new version.
			return fmt.Errorf("failed to enqueue retry: %w", err)
		}

		conversionRetries.Inc()
		log.Info("requeued conversion", "retryCount", updated.RetryCount, "delay", delay)
		return nil
	}

	if err := p.Store.FailConversion(ctx, conv, genErr.Error()); err != nil {
		switch {
		case errors.Is(err, storage.ErrStaleClaim):
			log.Info("dropping failure after losing claim race")
			return nil
		case errors.Is(err, storage.ErrSettlementConflict):
			settlementConflicts.Inc()
			log.Error("settlement conflict on failure, leaving task for the DLQ")
			return err
		default:
			return fmt.Errorf("failed to fail conversion: %w", err)
		}
	}

	conversionsProcessed.WithLabelValues("failed").Inc()
	p.notify(ctx, conv, models.FAILED, genErr.Error())
	return nil
}

// notify publishes status and balance updates. Publishing is best effort and
// never affects the task outcome.
func (p *Pool) notify(ctx context.Context, conv *models.Conversion, status models.ConversionStatus, errMsg string) {
	if err := p.Publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypeConversionUpdate,
		Payload: websockets.ConversionUpdatePayload{
			ConversionID: conv.Id,
			AccountID:    conv.AccountId,
			Status:       string(status),
			ErrorMessage: errMsg,
		},
	}); err != nil {
		slog.Error("failed to publish conversion update", "jobId", conv.Id, "error", err)
	}

	balance, err := p.Store.GetBalance(ctx, conv.AccountId)
	if err != nil {
		slog.Error("failed to read balance for update", "accountId", conv.AccountId, "error", err)
		return
	}
	if err := p.Publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypeBalanceUpdate,
		Payload: websockets.BalanceUpdatePayload{
			AccountID: balance.AccountId,
			Total:     balance.Total,
			Reserved:  balance.Reserved,
			Available: balance.Available,
		},
	}); err != nil {
		slog.Error("failed to publish balance update", "accountId", conv.AccountId, "error", err)
	}
}

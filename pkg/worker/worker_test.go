package worker

import (
	"context"
	"testing"
	"time"

	"github.com/codesnap/conversion-pipeline/pkg/generator"
	genmocks "github.com/codesnap/conversion-pipeline/pkg/generator/mocks"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	queuemocks "github.com/codesnap/conversion-pipeline/pkg/queue/mocks"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	storagemocks "github.com/codesnap/conversion-pipeline/pkg/storage/mocks"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingConversion() *models.Conversion {
	return &models.Conversion{
		Id:           "conv1",
		AccountId:    "acct1",
		ImageRef:     "uploads/shot.png",
		Framework:    "react",
		CSSFramework: "tailwind",
		Status:       models.PENDING,
		MaxRetries:   3,
		CreditCost:   100,
		Version:      1,
	}
}

func newTestPool(store *storagemocks.WorkerStore, q *queuemocks.TaskQueue, gen *genmocks.Generator) *Pool {
	return NewPool(store, q, gen, &websockets.NoOpPublisher{}, 1, Backoff{})
}

func TestProcess(t *testing.T) {
	msg := queue.Message{JobID: "conv1", Handle: "rh1"}
	balance := &models.Balance{AccountId: "acct1", Total: 900, Reserved: 0, Available: 900}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		result := &generator.GenerationResult{
			Code:         models.GeneratedCode{HTML: "<div/>", CSS: ".a{}"},
			TokensUsed:   1200,
			ProcessingMs: 1500,
		}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, generator.GenerationInput{
			ImageRef:     "uploads/shot.png",
			Framework:    "react",
			CSSFramework: "tailwind",
		}).Return(result, nil)
		mockStore.On("CompleteConversion", mock.Anything, &claimed, &result.Code, int32(1200), int64(1500)).Return(nil)
		mockStore.On("GetBalance", mock.Anything, "acct1").Return(balance, nil)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertExpectations(t)
		mockGen.AssertExpectations(t)
	})

	t.Run("Terminal Conversion Is Dropped", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		conv.Status = models.DONE
		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "ClaimConversion")
		mockGen.AssertNotCalled(t, "Generate")
	})

	t.Run("Unknown Conversion Is Dropped", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(nil, storage.ErrConversionNotFound)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "ClaimConversion")
	})

	t.Run("Lost Claim Is Dropped", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(nil, storage.ErrStaleClaim)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockGen.AssertNotCalled(t, "Generate")
	})

	t.Run("Transient Failure Requeues With Backoff", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		retried := claimed
		retried.Status = models.PENDING
		retried.RetryCount = 1
		retried.Version = 3

		genErr := &generator.Error{Class: generator.Transient, Message: "rate limited"}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, mock.Anything).Return(nil, genErr)
		mockStore.On("RetryConversion", mock.Anything, &claimed, genErr.Error()).Return(&retried, nil)
		mockQueue.On("Enqueue", mock.Anything, "conv1", 5*time.Second).Return(nil)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "FailConversion")
		mockQueue.AssertExpectations(t)
	})

	t.Run("Exhausted Retries Fail The Conversion", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		conv.RetryCount = 3
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		genErr := &generator.Error{Class: generator.Timeout, Message: "deadline exceeded"}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, mock.Anything).Return(nil, genErr)
		mockStore.On("FailConversion", mock.Anything, &claimed, genErr.Error()).Return(nil)
		mockStore.On("GetBalance", mock.Anything, "acct1").Return(balance, nil)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "RetryConversion")
		mockQueue.AssertNotCalled(t, "Enqueue")
	})

	t.Run("Permanent Failure Never Retries", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		genErr := &generator.Error{Class: generator.Permanent, Message: "unreadable screenshot"}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, mock.Anything).Return(nil, genErr)
		mockStore.On("FailConversion", mock.Anything, &claimed, genErr.Error()).Return(nil)
		mockStore.On("GetBalance", mock.Anything, "acct1").Return(balance, nil)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "RetryConversion")
	})

	t.Run("Settlement Conflict Is Not Acked", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		result := &generator.GenerationResult{Code: models.GeneratedCode{HTML: "<div/>"}}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, mock.Anything).Return(result, nil)
		mockStore.On("CompleteConversion", mock.Anything, &claimed, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrSettlementConflict)

		err := pool.Process(context.Background(), msg)

		assert.ErrorIs(t, err, storage.ErrSettlementConflict)
	})

	t.Run("Cancelled During Generation Is Dropped", func(t *testing.T) {
		mockStore := new(storagemocks.WorkerStore)
		mockQueue := new(queuemocks.TaskQueue)
		mockGen := new(genmocks.Generator)
		pool := newTestPool(mockStore, mockQueue, mockGen)

		conv := pendingConversion()
		claimed := *conv
		claimed.Status = models.RUNNING
		claimed.Version = 2

		result := &generator.GenerationResult{Code: models.GeneratedCode{HTML: "<div/>"}}

		mockStore.On("GetConversion", mock.Anything, "conv1").Return(conv, nil)
		mockStore.On("ClaimConversion", mock.Anything, "conv1", int64(1)).Return(&claimed, nil)
		mockGen.On("Generate", mock.Anything, mock.Anything).Return(result, nil)
		mockStore.On("CompleteConversion", mock.Anything, &claimed, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrStaleClaim)

		err := pool.Process(context.Background(), msg)

		assert.NoError(t, err)
	})
}

package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSettle(t *testing.T) {
	conv := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.RUNNING, Version: 2, CreditCost: 100}
	account := models.Account{AccountId: "acct1", Balance: 900, Reserved: 100, Version: 3}

	t.Run("Debit Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		entry, err := store.Settle(context.Background(), "conv1", models.KindDebit)

		assert.NoError(t, err)
		assert.Equal(t, models.KindDebit, entry.Kind)
		assert.Equal(t, int64(-100), entry.Amount)
		assert.Equal(t, "conv1", entry.Reference)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Settlement Replays Original", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)
		record := models.IdempotencyRecord{Key: models.SettleKey("conv1"), Outcome: models.KindDebit, EntryID: "entry1"}
		recordAV, _ := attributevalue.MarshalMap(record)
		original := models.LedgerEntry{EntryID: "entry1", AccountID: "acct1", Amount: -100, Kind: models.KindDebit, Reference: "conv1"}
		originalAV, _ := attributevalue.MarshalMap(original)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(0, 3))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: originalAV}, nil)

		entry, err := store.Settle(context.Background(), "conv1", models.KindDebit)

		assert.NoError(t, err)
		assert.Equal(t, "entry1", entry.EntryID)
		mockClient.AssertNumberOfCalls(t, "TransactWriteItems", 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflicting Outcome", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)
		record := models.IdempotencyRecord{Key: models.SettleKey("conv1"), Outcome: models.KindRelease, EntryID: "entry1"}
		recordAV, _ := attributevalue.MarshalMap(record)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(0, 3))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)

		_, err := store.Settle(context.Background(), "conv1", models.KindDebit)

		assert.ErrorIs(t, err, storage.ErrSettlementConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestCompleteConversion(t *testing.T) {
	conv := &models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.RUNNING, Version: 2, CreditCost: 100}
	account := models.Account{AccountId: "acct1", Balance: 900, Reserved: 100, Version: 3}
	result := &models.GeneratedCode{HTML: "<div>ok</div>"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CompleteConversion(context.Background(), conv, result, 1200, 4500)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Fence Returns Stale Claim", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionFailure(0, 4))

		err := store.CompleteConversion(context.Background(), conv, result, 1200, 4500)

		assert.ErrorIs(t, err, storage.ErrStaleClaim)
		mockClient.AssertExpectations(t)
	})

	t.Run("Recorded Settlement Is NoOp", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		record := models.IdempotencyRecord{Key: models.SettleKey("conv1"), Outcome: models.KindDebit, EntryID: "entry1"}
		recordAV, _ := attributevalue.MarshalMap(record)
		original := models.LedgerEntry{EntryID: "entry1", Kind: models.KindDebit, Amount: -100}
		originalAV, _ := attributevalue.MarshalMap(original)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(1, 4))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: originalAV}, nil)

		err := store.CompleteConversion(context.Background(), conv, result, 1200, 4500)

		assert.NoError(t, err)
		mockClient.AssertNumberOfCalls(t, "TransactWriteItems", 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflicting Recorded Outcome", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		record := models.IdempotencyRecord{Key: models.SettleKey("conv1"), Outcome: models.KindRelease, EntryID: "entry1"}
		recordAV, _ := attributevalue.MarshalMap(record)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(1, 4))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)

		err := store.CompleteConversion(context.Background(), conv, result, 1200, 4500)

		assert.ErrorIs(t, err, storage.ErrSettlementConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestFailConversion(t *testing.T) {
	conv := &models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.RUNNING, Version: 2, CreditCost: 100}
	account := models.Account{AccountId: "acct1", Balance: 900, Reserved: 100, Version: 3}

	t.Run("Success Releases Hold", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.FailConversion(context.Background(), conv, "model rejected the image")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Fence", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, conditionFailure(0, 4))

		err := store.FailConversion(context.Background(), conv, "model rejected the image")

		assert.ErrorIs(t, err, storage.ErrStaleClaim)
		mockClient.AssertExpectations(t)
	})
}

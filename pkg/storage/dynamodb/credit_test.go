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

func TestCredit(t *testing.T) {
	account := models.Account{AccountId: "acct1", Balance: 500, Reserved: 0, Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		entry, err := store.Credit(context.Background(), "acct1", 500, "evt_123", "Purchase: starter pack")

		assert.NoError(t, err)
		assert.Equal(t, models.KindCredit, entry.Kind)
		assert.Equal(t, int64(500), entry.Amount)
		assert.Equal(t, "evt_123", entry.Reference)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Event Never Double Credits", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		accountAV, _ := attributevalue.MarshalMap(account)
		record := models.IdempotencyRecord{Key: "evt_123", Outcome: models.KindCredit, EntryID: "entry9"}
		recordAV, _ := attributevalue.MarshalMap(record)
		original := models.LedgerEntry{EntryID: "entry9", AccountID: "acct1", Amount: 500, Kind: models.KindCredit, Reference: "evt_123"}
		originalAV, _ := attributevalue.MarshalMap(original)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(0, 3))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: recordAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: originalAV}, nil)

		entry, err := store.Credit(context.Background(), "acct1", 500, "evt_123", "Purchase: starter pack")

		assert.NoError(t, err)
		assert.Equal(t, "entry9", entry.EntryID)
		mockClient.AssertNumberOfCalls(t, "TransactWriteItems", 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.Credit(context.Background(), "ghost", 500, "evt_456", "Purchase")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertNotCalled(t, "TransactWriteItems")
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Reports Gross Reserved And Available", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		account := models.Account{AccountId: "acct1", Balance: 700, Reserved: 300, Version: 5}
		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)

		balance, err := store.GetBalance(context.Background(), "acct1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1000), balance.Total)
		assert.Equal(t, int64(300), balance.Reserved)
		assert.Equal(t, int64(700), balance.Available)
	})
}

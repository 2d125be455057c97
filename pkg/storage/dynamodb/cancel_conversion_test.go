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

func TestCancelConversion(t *testing.T) {
	account := models.Account{AccountId: "acct1", Balance: 700, Reserved: 300, Version: 3}

	t.Run("Cancel Pending Releases Hold", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		conv := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.PENDING, CreditCost: 300, Version: 1}
		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.CancelConversion(context.Background(), "conv1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cancel Terminal Fails Without Writes", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		conv := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.DONE, CreditCost: 300, Version: 3}
		convAV, _ := attributevalue.MarshalMap(conv)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: convAV}, nil)

		err := store.CancelConversion(context.Background(), "conv1")

		assert.ErrorIs(t, err, storage.ErrAlreadyTerminal)
		mockClient.AssertNotCalled(t, "TransactWriteItems")
	})

	t.Run("Cancel Loses Race To Finishing Worker", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		conv := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.RUNNING, CreditCost: 300, Version: 2}
		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)
		settled := conv
		settled.Status = models.DONE
		settled.Version = 3
		settledAV, _ := attributevalue.MarshalMap(settled)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(0, 4))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: settledAV}, nil)

		err := store.CancelConversion(context.Background(), "conv1")

		assert.ErrorIs(t, err, storage.ErrAlreadyTerminal)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cancel Loses Race To Retry Transition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		conv := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.RUNNING, CreditCost: 300, Version: 2}
		convAV, _ := attributevalue.MarshalMap(conv)
		accountAV, _ := attributevalue.MarshalMap(account)
		retried := conv
		retried.Status = models.PENDING
		retried.RetryCount = 1
		retried.Version = 3
		retriedAV, _ := attributevalue.MarshalMap(retried)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: convAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(nil, conditionFailure(0, 4))
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: retriedAV}, nil)

		err := store.CancelConversion(context.Background(), "conv1")

		assert.ErrorIs(t, err, storage.ErrConversionConflict)
		mockClient.AssertExpectations(t)
	})
}

package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func queriedStatus(input *dynamodb.QueryInput) string {
	av, ok := input.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return av.Value
}

func TestGetStuckConversions(t *testing.T) {
	t.Run("Sweeps Pending And Running", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		neverEnqueued := models.Conversion{Id: "conv1", AccountId: "acct1", Status: models.PENDING, Version: 1}
		orphaned := models.Conversion{Id: "conv2", AccountId: "acct2", Status: models.RUNNING, Version: 2}
		pendingAV, _ := attributevalue.MarshalMap(neverEnqueued)
		runningAV, _ := attributevalue.MarshalMap(orphaned)

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return queriedStatus(input) == string(models.PENDING)
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{pendingAV}}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return queriedStatus(input) == string(models.RUNNING)
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{runningAV}}, nil)

		stuck, err := store.GetStuckConversions(context.Background(), 10*time.Minute)

		require.NoError(t, err)
		require.Len(t, stuck, 2)
		assert.Equal(t, "conv1", stuck[0].Id)
		assert.Equal(t, models.PENDING, stuck[0].Status)
		assert.Equal(t, "conv2", stuck[1].Id)
		assert.Equal(t, models.RUNNING, stuck[1].Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Nothing Stuck", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("Query", mock.Anything, mock.Anything).Twice().Return(&dynamodb.QueryOutput{}, nil)

		stuck, err := store.GetStuckConversions(context.Background(), 10*time.Minute)

		require.NoError(t, err)
		assert.Empty(t, stuck)
	})
}

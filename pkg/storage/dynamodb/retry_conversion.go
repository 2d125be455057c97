package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
)

// RetryConversion transitions a RUNNING conversion back to PENDING with an
// incremented retry count. The store only records the retry; the caller
// re-enqueues the job id with a backoff delay through the task queue.
func (s *Store) RetryConversion(ctx context.Context, conv *models.Conversion, reason string) (*models.Conversion, error) {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal retry timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Conversions),
		Key: map[string]types.AttributeValue{
			"id": stringAV(conv.Id),
		},
		UpdateExpression:    aws.String("SET #status = :pending, retry_count = retry_count + :inc, version = version + :inc, error_message = :reason, updated_at = :now"),
		ConditionExpression: aws.String("#status = :running AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": stringAV(string(models.PENDING)),
			":running": stringAV(string(models.RUNNING)),
			":version": numberAV(conv.Version),
			":inc":     numberAV(1),
			":reason":  stringAV(reason),
			":now":     nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, storage.ErrStaleClaim
		}
		return nil, fmt.Errorf("failed to record retry for conversion %s: %w", conv.Id, err)
	}

	var updated models.Conversion
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal retried conversion: %w", err)
	}

	return &updated, nil
}

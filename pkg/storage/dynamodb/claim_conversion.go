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

// ClaimConversion transitions a conversion to RUNNING using an optimistic
// version check. The claim succeeds from PENDING, or from RUNNING when the
// version still matches (a redelivery after a worker crash). A stale version
// fails with ErrStaleClaim and mutates nothing; exactly one of two racing
// workers wins.
func (s *Store) ClaimConversion(ctx context.Context, id string, version int64) (*models.Conversion, error) {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claim timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Conversions),
		Key: map[string]types.AttributeValue{
			"id": stringAV(id),
		},
		UpdateExpression:    aws.String("SET #status = :running, version = version + :inc, updated_at = :now"),
		ConditionExpression: aws.String("(#status = :pending OR #status = :running) AND version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":running": stringAV(string(models.RUNNING)),
			":pending": stringAV(string(models.PENDING)),
			":version": numberAV(version),
			":inc":     numberAV(1),
			":now":     nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, storage.ErrStaleClaim
		}
		return nil, fmt.Errorf("failed to claim conversion %s: %w", id, err)
	}

	var conv models.Conversion
	if err := attributevalue.UnmarshalMap(result.Attributes, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal claimed conversion: %w", err)
	}

	return &conv, nil
}

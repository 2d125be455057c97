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
)

const (
	accountConversionsGSI = "account_id-created_at-index"
	stuckConversionsGSI   = "status-updated_at-index"
)

// ListConversionsByAccount retrieves all conversions for an account, newest
// first.
func (s *Store) ListConversionsByAccount(ctx context.Context, accountID string) ([]models.Conversion, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Conversions),
		IndexName:              aws.String(accountConversionsGSI),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": stringAV(accountID),
		},
		ScanIndexForward: aws.Bool(false),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions for account %s: %w", accountID, err)
	}

	var conversions []models.Conversion
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &conversions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversions: %w", err)
	}

	return conversions, nil
}

// GetStuckConversions retrieves non-terminal conversions that have not moved
// for longer than maxAge: RUNNING jobs whose worker died before settling, and
// PENDING jobs that never made it onto the queue (a failed submit or retry
// enqueue). The status index keys on one status per query, so each stuck
// status is queried separately.
func (s *Store) GetStuckConversions(ctx context.Context, maxAge time.Duration) ([]models.Conversion, error) {
	cutoffTime := time.Now().Add(-maxAge)
	cutoffTimeStr, err := cutoffTime.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	var conversions []models.Conversion
	for _, status := range []models.ConversionStatus{models.PENDING, models.RUNNING} {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.Tables.Conversions),
			IndexName:              aws.String(stuckConversionsGSI),
			KeyConditionExpression: aws.String("#status = :status AND updated_at < :cutoff"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": stringAV(string(status)),
				":cutoff": stringAV(string(cutoffTimeStr)),
			},
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for stuck %s conversions: %w", status, err)
		}

		var batch []models.Conversion
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stuck conversions: %w", err)
		}
		conversions = append(conversions, batch...)
	}

	return conversions, nil
}

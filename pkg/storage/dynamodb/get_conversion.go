package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
)

// GetConversion retrieves a conversion from DynamoDB by its ID.
func (s *Store) GetConversion(ctx context.Context, id string) (*models.Conversion, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversion ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Conversions),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrConversionNotFound
	}

	var conv models.Conversion
	if err := attributevalue.UnmarshalMap(result.Item, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversion: %w", err)
	}

	return &conv, nil
}

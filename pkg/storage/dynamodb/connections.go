package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AddConnection stores a WebSocket connection ID.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	item := map[string]types.AttributeValue{
		"connection_id": stringAV(connectionID),
		"connected_at":  stringAV(time.Now().UTC().Format(time.RFC3339)),
	}

	_, err := s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Connections),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection ID: %w", err)
	}

	return nil
}

// RemoveConnection deletes a WebSocket connection ID.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.Tables.Connections),
		Key: map[string]types.AttributeValue{
			"connection_id": stringAV(connectionID),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection ID: %w", err)
	}

	return nil
}

// GetAllConnections retrieves all stored WebSocket connection IDs.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(s.Tables.Connections),
		ProjectionExpression: aws.String("connection_id"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan connections table: %w", err)
	}

	var rows []struct {
		ConnectionID string `dynamodbav:"connection_id"`
	}
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connection IDs: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ConnectionID)
	}

	return ids, nil
}

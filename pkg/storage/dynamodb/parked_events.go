package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/models"
)

// ParkEvent durably stores a payment event that could not be applied, keyed
// by event id. Parking the same event twice overwrites the previous record,
// which is safe because the payload is identical.
func (s *Store) ParkEvent(ctx context.Context, event *models.ParkedEvent) error {
	eventAV, err := attributevalue.MarshalMap(event)
	if err != nil {
		return fmt.Errorf("failed to marshal parked event: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.ParkedEvents),
		Item:      eventAV,
	})
	if err != nil {
		return fmt.Errorf("failed to park event %s: %w", event.EventID, err)
	}

	return nil
}

// ListParkedEvents retrieves parked events for operator review.
func (s *Store) ListParkedEvents(ctx context.Context, limit int32) ([]models.ParkedEvent, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.ParkedEvents),
		Limit:     aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan parked events: %w", err)
	}

	var events []models.ParkedEvent
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parked events: %w", err)
	}

	return events, nil
}

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

// FailConversion transitions a claimed RUNNING conversion to FAILED and
// settles the hold as a RELEASE in one transaction, so the user keeps their
// credits. The same fence and idempotency rules apply as in
// CompleteConversion.
func (s *Store) FailConversion(ctx context.Context, conv *models.Conversion, reason string) error {
	account, err := s.GetAccount(ctx, conv.AccountId)
	if err != nil {
		return fmt.Errorf("failed to get account for failure: %w", err)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal failure timestamp: %w", err)
	}

	statusItem := types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Conversions),
			Key: map[string]types.AttributeValue{
				"id": stringAV(conv.Id),
			},
			UpdateExpression:    aws.String("SET #status = :failed, error_message = :reason, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("#status = :running AND version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":failed":  stringAV(string(models.FAILED)),
				":running": stringAV(string(models.RUNNING)),
				":reason":  stringAV(reason),
				":version": numberAV(conv.Version),
				":inc":     numberAV(1),
				":now":     nowAV,
			},
		},
	}

	entry := newSettlementEntry(conv, models.KindRelease, now)
	settleItems, err := s.settlementItems(account, conv, models.KindRelease, &entry)
	if err != nil {
		return err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: append([]types.TransactWriteItem{statusItem}, settleItems...),
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if conditionFailedAt(err, 0) {
			return storage.ErrStaleClaim
		}
		if conditionFailedAt(err, 1) {
			if _, rerr := s.resolveExistingSettlement(ctx, conv.Id, models.KindRelease); rerr != nil {
				return rerr
			}
			return nil
		}
		return fmt.Errorf("failed to execute failure transaction: %w", err)
	}

	return nil
}

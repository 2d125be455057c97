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

// CancelConversion cancels a PENDING or RUNNING conversion and releases its
// hold, in one transaction. Cancelling an already-terminal conversion fails
// with ErrAlreadyTerminal; losing the fence to a transition that left the job
// cancellable fails with ErrConversionConflict. A worker racing the
// cancellation loses on the version fence and observes ErrStaleClaim.
func (s *Store) CancelConversion(ctx context.Context, id string) error {
	conv, err := s.GetConversion(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get conversion for cancellation: %w", err)
	}

	if conv.Status.IsTerminal() {
		return storage.ErrAlreadyTerminal
	}

	account, err := s.GetAccount(ctx, conv.AccountId)
	if err != nil {
		return fmt.Errorf("failed to get account for cancellation: %w", err)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal cancellation timestamp: %w", err)
	}

	statusItem := types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Conversions),
			Key: map[string]types.AttributeValue{
				"id": stringAV(id),
			},
			UpdateExpression:    aws.String("SET #status = :cancelled, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("(#status = :pending OR #status = :running) AND version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cancelled": stringAV(string(models.CANCELLED)),
				":pending":   stringAV(string(models.PENDING)),
				":running":   stringAV(string(models.RUNNING)),
				":version":   numberAV(conv.Version),
				":inc":       numberAV(1),
				":now":       nowAV,
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
		// A worker moved the job between our read and the write. Re-read to
		// tell a finished job from a retry transition that merely bumped the
		// version and left the job cancellable.
		if conditionFailedAt(err, 0) || conditionFailedAt(err, 1) {
			current, readErr := s.GetConversion(ctx, id)
			if readErr != nil {
				return fmt.Errorf("failed to re-read conversion after cancellation conflict: %w", readErr)
			}
			if current.Status.IsTerminal() {
				return storage.ErrAlreadyTerminal
			}
			return storage.ErrConversionConflict
		}
		return fmt.Errorf("failed to execute cancellation transaction: %w", err)
	}

	return nil
}

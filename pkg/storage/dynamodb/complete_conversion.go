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

// CompleteConversion transitions a claimed RUNNING conversion to DONE,
// records the generated result and settles the hold as a DEBIT, all in one
// transaction. A crash can therefore never leave a DONE conversion with an
// open hold. On redelivery the idempotency record makes the call a no-op; if
// another actor advanced the conversion first the call fails with
// ErrStaleClaim.
func (s *Store) CompleteConversion(ctx context.Context, conv *models.Conversion, result *models.GeneratedCode, tokensUsed int32, processingMs int64) error {
	account, err := s.GetAccount(ctx, conv.AccountId)
	if err != nil {
		return fmt.Errorf("failed to get account for completion: %w", err)
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal completion timestamp: %w", err)
	}
	resultAV, err := attributevalue.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal generated result: %w", err)
	}

	statusItem := types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Conversions),
			Key: map[string]types.AttributeValue{
				"id": stringAV(conv.Id),
			},
			UpdateExpression:    aws.String("SET #status = :done, #result = :result, tokens_used = :tokens, processing_ms = :elapsed, version = version + :inc, updated_at = :now"),
			ConditionExpression: aws.String("#status = :running AND version = :version"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
				"#result": "result",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":done":    stringAV(string(models.DONE)),
				":running": stringAV(string(models.RUNNING)),
				":result":  resultAV,
				":tokens":  numberAV(int64(tokensUsed)),
				":elapsed": numberAV(processingMs),
				":version": numberAV(conv.Version),
				":inc":     numberAV(1),
				":now":     nowAV,
			},
		},
	}

	entry := newSettlementEntry(conv, models.KindDebit, now)
	settleItems, err := s.settlementItems(account, conv, models.KindDebit, &entry)
	if err != nil {
		return err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: append([]types.TransactWriteItem{statusItem}, settleItems...),
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		// Item 0 is the conversion transition: a failed fence there means
		// another actor (racing worker, cancellation) advanced the job.
		if conditionFailedAt(err, 0) {
			return storage.ErrStaleClaim
		}
		// Item 1 is the idempotency insert: this settlement already happened.
		if conditionFailedAt(err, 1) {
			if _, rerr := s.resolveExistingSettlement(ctx, conv.Id, models.KindDebit); rerr != nil {
				return rerr
			}
			return nil
		}
		return fmt.Errorf("failed to execute completion transaction: %w", err)
	}

	return nil
}

package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codesnap/conversion-pipeline/pkg/models"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	"github.com/google/uuid"
)

// CreateConversion atomically reserves credits on the account and creates a
// new PENDING conversion record with its RESERVE ledger entry. The account's
// available balance is re-checked inside the same transaction via a
// conditional write, so concurrent reservations for the same account cannot
// overdraw it.
func (s *Store) CreateConversion(ctx context.Context, conv *models.Conversion) (*models.Conversion, error) {
	// 1. Get the current state of the account for the version fence.
	account, err := s.GetAccount(ctx, conv.AccountId)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// 2. Complete the conversion object with server-side details.
	now := time.Now()
	conv.Id = uuid.New().String()
	conv.Status = models.PENDING
	conv.RetryCount = 0
	conv.Version = 1
	conv.CreatedAt = now
	conv.UpdatedAt = now

	slog.Log(ctx, slog.LevelDebug, "creating conversion", "conversion", conv)

	convAV, err := attributevalue.MarshalMap(conv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversion: %w", err)
	}

	entry := models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AccountID:   conv.AccountId,
		Amount:      -conv.CreditCost,
		Kind:        models.KindReserve,
		Reference:   conv.Id,
		Description: fmt.Sprintf("Hold for conversion %s", conv.Id),
		CreatedAt:   now,
		GSI1PK:      ledgerGSI1PK,
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reserve entry: %w", err)
	}

	// 3. Construct the TransactWriteItems input. The balance check and the
	// version fence live on the account update; the other puts are
	// insert-only.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Place the hold on the account.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Accounts),
					Key: map[string]types.AttributeValue{
						"account_id": stringAV(conv.AccountId),
					},
					UpdateExpression:    aws.String("SET balance = balance - :cost, reserved = reserved + :cost, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :cost AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cost":    numberAV(conv.CreditCost),
						":version": numberAV(account.Version),
						":inc":     numberAV(1),
					},
				},
			},
			{
				// Operation 2: Create the conversion record.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Conversions),
					Item:                convAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 3: Record the RESERVE ledger entry.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                entryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if conditionFailedAt(err, 0) {
			return nil, storage.ErrInsufficientCredits
		}
		return nil, fmt.Errorf("failed to execute reservation transaction: %w", err)
	}

	return conv, nil
}

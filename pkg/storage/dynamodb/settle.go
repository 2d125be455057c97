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
	"github.com/google/uuid"
)

// Settlement turns a conversion's RESERVE hold into exactly one terminal
// ledger entry. The idempotency record, the ledger entry and the account
// projection update are committed in a single TransactWriteItems: the
// insert-if-absent on the idempotency key is what makes a redelivered
// settlement a no-op, because the whole transaction fails atomically when the
// key already exists.

// newSettlementEntry builds the terminal ledger entry for a settlement.
func newSettlementEntry(conv *models.Conversion, outcome models.SettlementOutcome, now time.Time) models.LedgerEntry {
	amount := conv.CreditCost
	description := fmt.Sprintf("Release of hold for conversion %s", conv.Id)
	if outcome == models.KindDebit {
		amount = -conv.CreditCost
		description = fmt.Sprintf("Charge for conversion %s", conv.Id)
	}
	return models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AccountID:   conv.AccountId,
		Amount:      amount,
		Kind:        outcome,
		Reference:   conv.Id,
		Description: description,
		CreatedAt:   now,
		GSI1PK:      ledgerGSI1PK,
	}
}

// settlementItems builds the three transact items shared by every settlement
// path: idempotency record put, ledger entry put, account projection update.
// Callers prepend their conversion status update so the whole transition
// commits or fails as one unit.
func (s *Store) settlementItems(account *models.Account, conv *models.Conversion, outcome models.SettlementOutcome, entry *models.LedgerEntry) ([]types.TransactWriteItem, error) {
	record := models.IdempotencyRecord{
		Key:       models.SettleKey(conv.Id),
		Outcome:   outcome,
		EntryID:   entry.EntryID,
		CreatedAt: entry.CreatedAt,
	}
	recordAV, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settlement entry: %w", err)
	}

	// DEBIT burns the hold; RELEASE returns it to the balance.
	updateExpr := "SET balance = balance + :cost, reserved = reserved - :cost, version = version + :inc"
	if outcome == models.KindDebit {
		updateExpr = "SET reserved = reserved - :cost, version = version + :inc"
	}

	return []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Idempotency),
				Item:                recordAV,
				ConditionExpression: aws.String("attribute_not_exists(idem_key)"),
			},
		},
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		},
		{
			Update: &types.Update{
				TableName: aws.String(s.Tables.Accounts),
				Key: map[string]types.AttributeValue{
					"account_id": stringAV(conv.AccountId),
				},
				UpdateExpression:    aws.String(updateExpr),
				ConditionExpression: aws.String("reserved >= :cost AND version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":cost":    numberAV(conv.CreditCost),
					":version": numberAV(account.Version),
					":inc":     numberAV(1),
				},
			},
		},
	}, nil
}

// getIdempotencyRecord fetches the settlement record for a key, or nil when
// none exists.
func (s *Store) getIdempotencyRecord(ctx context.Context, key string) (*models.IdempotencyRecord, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Idempotency),
		Key: map[string]types.AttributeValue{
			"idem_key": stringAV(key),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency record: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}
	var record models.IdempotencyRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}
	return &record, nil
}

// getLedgerEntry fetches a ledger entry by its id.
func (s *Store) getLedgerEntry(ctx context.Context, entryID string) (*models.LedgerEntry, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Ledger),
		Key: map[string]types.AttributeValue{
			"entry_id": stringAV(entryID),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("ledger entry %s not found", entryID)
	}
	var entry models.LedgerEntry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}
	return &entry, nil
}

// resolveExistingSettlement replays an already-recorded settlement. A
// matching outcome returns the original entry with no side effects; a
// conflicting outcome fails with ErrSettlementConflict.
func (s *Store) resolveExistingSettlement(ctx context.Context, conversionID string, outcome models.SettlementOutcome) (*models.LedgerEntry, error) {
	record, err := s.getIdempotencyRecord(ctx, models.SettleKey(conversionID))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("settlement transaction cancelled but no settlement recorded for conversion %s", conversionID)
	}
	if record.Outcome != outcome {
		return nil, fmt.Errorf("conversion %s settled as %s, requested %s: %w", conversionID, record.Outcome, outcome, storage.ErrSettlementConflict)
	}
	return s.getLedgerEntry(ctx, record.EntryID)
}

// Settle converts a conversion's RESERVE into a terminal DEBIT or RELEASE
// entry without touching the conversion record. Workers normally settle
// through CompleteConversion/FailConversion, which bundle the status
// transition into the same transaction; standalone Settle exists for repair
// tooling and for replaying redelivered settlements.
func (s *Store) Settle(ctx context.Context, conversionID string, outcome models.SettlementOutcome) (*models.LedgerEntry, error) {
	conv, err := s.GetConversion(ctx, conversionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion for settlement: %w", err)
	}
	account, err := s.GetAccount(ctx, conv.AccountId)
	if err != nil {
		return nil, fmt.Errorf("failed to get account for settlement: %w", err)
	}

	entry := newSettlementEntry(conv, outcome, time.Now())
	items, err := s.settlementItems(account, conv, outcome, &entry)
	if err != nil {
		return nil, err
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 0) {
			// Already settled; replay the recorded outcome.
			return s.resolveExistingSettlement(ctx, conversionID, outcome)
		}
		return nil, fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	return &entry, nil
}

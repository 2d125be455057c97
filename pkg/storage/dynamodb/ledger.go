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
	"github.com/google/uuid"
)

const (
	ledgerRecentGSI  = "gsi1pk-created_at-index"
	ledgerAccountGSI = "account_id-created_at-index"
)

// Credit adds purchased credits to an account, keyed by the payment
// provider's event id. The idempotency insert, the CREDIT ledger entry and
// the balance update commit atomically; a resent event fails the insert and
// replays the original entry instead.
func (s *Store) Credit(ctx context.Context, accountID string, amount int64, eventID, description string) (*models.LedgerEntry, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account for credit: %w", err)
	}

	now := time.Now()
	entry := models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AccountID:   accountID,
		Amount:      amount,
		Kind:        models.KindCredit,
		Reference:   eventID,
		Description: description,
		CreatedAt:   now,
		GSI1PK:      ledgerGSI1PK,
	}
	entryAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	record := models.IdempotencyRecord{
		Key:       eventID,
		Outcome:   models.KindCredit,
		EntryID:   entry.EntryID,
		CreatedAt: now,
	}
	recordAV, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
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
						"account_id": stringAV(accountID),
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  numberAV(amount),
						":version": numberAV(account.Version),
						":inc":     numberAV(1),
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if conditionFailedAt(err, 0) {
			// Duplicate event; return the entry written the first time.
			existing, rerr := s.getIdempotencyRecord(ctx, eventID)
			if rerr != nil {
				return nil, rerr
			}
			if existing == nil {
				return nil, fmt.Errorf("credit transaction cancelled but no record found for event %s", eventID)
			}
			return s.getLedgerEntry(ctx, existing.EntryID)
		}
		return nil, fmt.Errorf("failed to execute credit transaction: %w", err)
	}

	return &entry, nil
}

// GetBalance returns the account's credit position from the ledger
// projection. Total includes open holds; Available is what a new reservation
// can draw on.
func (s *Store) GetBalance(ctx context.Context, accountID string) (*models.Balance, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &models.Balance{
		AccountId: account.AccountId,
		Total:     account.Balance + account.Reserved,
		Reserved:  account.Reserved,
		Available: account.Balance,
	}, nil
}

// ListLedgerEntries retrieves the most recent ledger entries across all
// accounts.
func (s *Store) ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Ledger),
		IndexName:              aws.String(ledgerRecentGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": stringAV(ledgerGSI1PK),
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entries: %w", err)
	}

	return entries, nil
}

// ListAccountEntries retrieves the most recent ledger entries for one
// account.
func (s *Store) ListAccountEntries(ctx context.Context, accountID string, limit int32) ([]models.LedgerEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Ledger),
		IndexName:              aws.String(ledgerAccountGSI),
		KeyConditionExpression: aws.String("account_id = :account_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account_id": stringAV(accountID),
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountID, err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account ledger entries: %w", err)
	}

	return entries, nil
}

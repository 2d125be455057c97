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

// CreateAccount creates a new account record and, when signupGrant is
// positive, records the grant as a CREDIT ledger entry in the same
// transaction so the projection and the ledger can never disagree.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account, signupGrant int64) (*models.Account, error) {
	now := time.Now()
	if account.AccountId == "" {
		account.AccountId = uuid.New().String()
	}
	account.Balance = signupGrant
	account.Reserved = 0
	account.Version = 1
	account.CreatedAt = now

	accountAV, err := attributevalue.MarshalMap(account)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Accounts),
				Item:                accountAV,
				ConditionExpression: aws.String("attribute_not_exists(account_id)"),
			},
		},
	}

	if signupGrant > 0 {
		entry := models.LedgerEntry{
			EntryID:     uuid.New().String(),
			AccountID:   account.AccountId,
			Amount:      signupGrant,
			Kind:        models.KindCredit,
			Reference:   "signup:" + account.AccountId,
			Description: "Signup credit grant",
			CreatedAt:   now,
			GSI1PK:      ledgerGSI1PK,
		}
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal signup grant entry: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if conditionFailedAt(err, 0) {
			return nil, storage.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// GetAccount retrieves an account from DynamoDB by its ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"account_id": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Accounts),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrAccountNotFound
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// ListAccounts retrieves all accounts from DynamoDB.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Accounts),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts table: %w", err)
	}

	var accounts []models.Account
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}

	return accounts, nil
}

package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client the store uses.
// Having an interface here lets tests substitute a mock client.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the DynamoDB tables the store operates on.
type Tables struct {
	Accounts     string
	Conversions  string
	Ledger       string
	Idempotency  string
	ParkedEvents string
	Connections  string
}

// Store implements the Storage interface using AWS DynamoDB. All multi-item
// invariants are enforced with conditional writes inside TransactWriteItems;
// there are no locks.
type Store struct {
	Client DynamoDBAPI
	Tables Tables
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client: client,
		Tables: tables,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// ledgerGSI1PK is the constant partition key collecting all ledger entries
// under one GSI partition for the recent-entries listing.
const ledgerGSI1PK = "LEDGER_ENTRIES"

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	appconfig "github.com/codesnap/conversion-pipeline/pkg/config"
	wshandlers "github.com/codesnap/conversion-pipeline/pkg/handlers/websockets"
	dydbstore "github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var handler *wshandlers.Handler

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, dydbstore.Tables{
		Accounts:     cfg.AccountsTable,
		Conversions:  cfg.ConversionsTable,
		Ledger:       cfg.LedgerTable,
		Idempotency:  cfg.IdempotencyTable,
		ParkedEvents: cfg.ParkedEventsTable,
		Connections:  cfg.ConnectionsTable,
	})

	handler = wshandlers.NewHandler(store)
}

// HandleRequest dispatches API Gateway WebSocket events by route key.
func HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return handler.HandleConnect(ctx, request)
	case "$disconnect":
		return handler.HandleDisconnect(ctx, request)
	default:
		return handler.HandleDefault(ctx, request)
	}
}

func main() {
	lambda.Start(HandleRequest)
}

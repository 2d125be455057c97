package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/codesnap/conversion-pipeline/pkg/config"
	"github.com/codesnap/conversion-pipeline/pkg/handlers"
	"github.com/codesnap/conversion-pipeline/pkg/handlers/accounts"
	"github.com/codesnap/conversion-pipeline/pkg/handlers/conversions"
	"github.com/codesnap/conversion-pipeline/pkg/handlers/webhooks"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	dydbstore "github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/webhook"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
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

	sqsClient := sqs.NewFromConfig(awsCfg)
	taskQueue := queue.NewSQSQueue(sqsClient, cfg.QueueURL)

	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if cfg.WebSocketEndpoint != "" {
		publisher, err = websockets.NewPublisher(store, store, cfg.WebSocketEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	if err := cfg.RequireWebhookSecret(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	reconciler := webhook.NewReconciler(store, cfg.WebhookSecret, cfg.WebhookTolerance)

	router := handlers.NewRouter(
		logger,
		conversions.NewHandler(store, taskQueue, publisher, cfg.ConversionCost, cfg.MaxRetries),
		accounts.NewHandler(store, cfg.SignupGrant),
		webhooks.NewHandler(reconciler, store),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("starting API server", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/codesnap/conversion-pipeline/pkg/config"
	"github.com/codesnap/conversion-pipeline/pkg/generator"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	dydbstore "github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
	"github.com/codesnap/conversion-pipeline/pkg/worker"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	gen := generator.NewHTTPGenerator(cfg.GeneratorEndpoint, cfg.GeneratorModel, cfg.GeneratorAPIKey, cfg.GeneratorTimeout)

	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if cfg.WebSocketEndpoint != "" {
		publisher, err = websockets.NewPublisher(store, store, cfg.WebSocketEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	// Metrics endpoint for scraping; the worker serves nothing else.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		})
		if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
			slog.Error("metrics server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewPool(store, taskQueue, gen, publisher, cfg.Workers, worker.Backoff{
		Base:   cfg.BackoffBase,
		Factor: cfg.BackoffFactor,
		Cap:    cfg.BackoffCap,
	})
	slog.Info("starting conversion workers", "count", cfg.Workers)
	pool.Run(ctx)
	slog.Info("workers stopped")
}

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	appconfig "github.com/codesnap/conversion-pipeline/pkg/config"
	"github.com/codesnap/conversion-pipeline/pkg/queue"
	"github.com/codesnap/conversion-pipeline/pkg/storage"
	dydbstore "github.com/codesnap/conversion-pipeline/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage
var taskQueue queue.TaskQueue
var cfg *appconfig.Config

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	var err error
	cfg, err = appconfig.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store = dydbstore.New(dbClient, dydbstore.Tables{
		Accounts:     cfg.AccountsTable,
		Conversions:  cfg.ConversionsTable,
		Ledger:       cfg.LedgerTable,
		Idempotency:  cfg.IdempotencyTable,
		ParkedEvents: cfg.ParkedEventsTable,
		Connections:  cfg.ConnectionsTable,
	})

	sqsClient := sqs.NewFromConfig(awsCfg)
	taskQueue = queue.NewSQSQueue(sqsClient, cfg.QueueURL)
}

// HandleRequest is triggered by an EventBridge Schedule. It re-enqueues
// conversions stuck in PENDING or RUNNING: a worker died after claiming but
// before settling, or the enqueue after the reservation committed never
// happened. Redelivery is safe: claims re-fence on the stored version and
// settlements are recorded at most once.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting sweep for stuck conversions...")

	stuck, err := store.GetStuckConversions(ctx, cfg.StuckThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck conversions: %v", err)
		return err
	}

	if len(stuck) == 0 {
		log.Println("No stuck conversions found.")
		return nil
	}

	log.Printf("Found %d stuck conversions. Re-enqueuing them...", len(stuck))

	for _, conv := range stuck {
		if err := taskQueue.Enqueue(ctx, conv.Id, 0); err != nil {
			log.Printf("ERROR: failed to re-enqueue conversion %s: %v", conv.Id, err)
			// Continue to the next conversion, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully re-enqueued conversion %s", conv.Id)
	}

	log.Println("Sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}

package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
)

// AllConnectionsGetter defines an interface for getting all connection IDs.
type AllConnectionsGetter interface {
	GetAllConnections(ctx context.Context) ([]string, error)
}

// APIGatewayPublisher publishes messages to clients connected through an API
// Gateway WebSocket API. Stale connections discovered while publishing are
// pruned from storage.
type APIGatewayPublisher struct {
	store       AllConnectionsGetter
	connManager ConnectionManager
	apiGwClient *apigatewaymanagementapi.Client
}

// NewPublisher creates a new APIGatewayPublisher.
func NewPublisher(store AllConnectionsGetter, connManager ConnectionManager, apiEndpoint string) (*APIGatewayPublisher, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	apiGwClient := apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
		o.BaseEndpoint = aws.String(apiEndpoint)
	})

	return &APIGatewayPublisher{
		store:       store,
		connManager: connManager,
		apiGwClient: apiGwClient,
	}, nil
}

// Make sure we conform to the interface
var _ Publisher = (*APIGatewayPublisher)(nil)

// Publish fans the message out to every connected client. Per-connection
// failures are logged and skipped; publishing is best effort and never blocks
// the pipeline.
func (p *APIGatewayPublisher) Publish(ctx context.Context, message Message) error {
	connectionIDs, err := p.store.GetAllConnections(ctx)
	if err != nil {
		return fmt.Errorf("failed to get all connections: %w", err)
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, connectionID := range connectionIDs {
		_, err := p.apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
			ConnectionId: aws.String(connectionID),
			Data:         payload,
		})
		if err == nil {
			continue
		}

		var goneErr *apigwtypes.GoneException
		if errors.As(err, &goneErr) {
			slog.Info("pruning stale connection", "connectionId", connectionID)
			if err := p.connManager.RemoveConnection(ctx, connectionID); err != nil {
				slog.Error("failed to delete stale connection", "connectionId", connectionID, "error", err)
			}
			continue
		}
		slog.Error("failed to post to connection", "connectionId", connectionID, "error", err)
	}

	return nil
}

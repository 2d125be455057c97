package websockets

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/codesnap/conversion-pipeline/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler registers and unregisters WebSocket subscribers. Clients only
// listen; conversion and balance updates flow one way, from the workers out.
type Handler struct {
	connManager websockets.ConnectionManager
}

// NewHandler creates a new Handler.
func NewHandler(connManager websockets.ConnectionManager) *Handler {
	return &Handler{connManager: connManager}
}

func lambdaResponse(status int) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: status}
}

// HandleConnect registers a new API Gateway connection.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connID := request.RequestContext.ConnectionID
	if err := h.connManager.AddConnection(ctx, connID); err != nil {
		slog.Error("failed to register connection", "connectionId", connID, "error", err)
		return lambdaResponse(http.StatusInternalServerError), err
	}
	slog.Info("client connected", "connectionId", connID)
	return lambdaResponse(http.StatusOK), nil
}

// HandleDisconnect removes a closed API Gateway connection.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connID := request.RequestContext.ConnectionID
	if err := h.connManager.RemoveConnection(ctx, connID); err != nil {
		slog.Error("failed to remove connection", "connectionId", connID, "error", err)
		return lambdaResponse(http.StatusInternalServerError), err
	}
	slog.Info("client disconnected", "connectionId", connID)
	return lambdaResponse(http.StatusOK), nil
}

// HandleDefault drops anything a client sends. Subscribers have no inbound
// protocol.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	slog.Info("ignoring client message", "connectionId", request.RequestContext.ConnectionID, "body", request.Body)
	return lambdaResponse(http.StatusOK), nil
}

// Origin checks are left to the deployment in front of the local dev server.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP is the local development equivalent of the $connect/$disconnect
// lambda routes: upgrade, register, block until the peer goes away, then
// unregister.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	connID := uuid.New().String()
	if err := h.connManager.AddConnection(ctx, connID); err != nil {
		slog.Error("failed to register local connection", "connectionId", connID, "error", err)
		return
	}
	slog.Info("local client connected", "connectionId", connID)

	defer func() {
		if err := h.connManager.RemoveConnection(ctx, connID); err != nil {
			slog.Error("failed to remove local connection", "connectionId", connID, "error", err)
		}
		slog.Info("local client disconnected", "connectionId", connID)
	}()

	// Read until close; inbound frames carry nothing we act on.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket closed unexpectedly", "error", err)
			}
			return
		}
	}
}

package websockets

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeConversionUpdate is for messages that report conversion
	// status changes.
	MessageTypeConversionUpdate MessageType = "conversionUpdate"

	// MessageTypeBalanceUpdate is for messages that report credit balance
	// changes.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// ConversionUpdatePayload is the payload for a conversionUpdate message.
type ConversionUpdatePayload struct {
	ConversionID string `json:"conversion_id"`
	AccountID    string `json:"account_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	AccountID string `json:"account_id"`
	Total     int64  `json:"total"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}

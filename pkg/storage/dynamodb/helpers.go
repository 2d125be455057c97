package dynamodb

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// numberAV formats an int64 as a DynamoDB number attribute.
func numberAV(n int64) *types.AttributeValueMemberN {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", n)}
}

// stringAV wraps a string as a DynamoDB string attribute.
func stringAV(s string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: s}
}

// conditionFailedAt reports whether err is a TransactionCanceledException
// whose cancellation reason at index idx is a failed conditional check.
func conditionFailedAt(err error, idx int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	if idx >= len(tce.CancellationReasons) {
		return false
	}
	reason := tce.CancellationReasons[idx]
	return reason.Code != nil && *reason.Code == "ConditionalCheckFailed"
}

// isConditionalCheckFailed reports whether err is a single-item conditional
// check failure.
func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// maxSQSDelay is the hard SQS limit on per-message delay.
const maxSQSDelay = 900 * time.Second

// SQSAPI defines the subset of the SQS client used by the task queue.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// taskBody is the JSON payload carried on the queue. It holds only the job
// id; workers re-read the conversion from storage so a stale payload can
// never override the record.
type taskBody struct {
	JobID string `json:"job_id"`
}

// SQSQueue implements the TaskQueue interface using AWS SQS.
type SQSQueue struct {
	Client   SQSAPI
	QueueURL string

	// WaitTime is the long-poll duration for Receive.
	WaitTime time.Duration
}

// NewSQSQueue creates a new SQSQueue.
func NewSQSQueue(client SQSAPI, queueURL string) *SQSQueue {
	return &SQSQueue{
		Client:   client,
		QueueURL: queueURL,
		WaitTime: 20 * time.Second,
	}
}

// Make sure we conform to the interface
var _ TaskQueue = (*SQSQueue)(nil)

// Enqueue sends the conversion task to SQS with the requested delay, capped
// at the SQS maximum.
func (q *SQSQueue) Enqueue(ctx context.Context, jobID string, delay time.Duration) error {
	body, err := json.Marshal(taskBody{JobID: jobID})
	if err != nil {
		return fmt.Errorf("failed to marshal task for SQS: %w", err)
	}

	if delay > maxSQSDelay {
		delay = maxSQSDelay
	}
	if delay < 0 {
		delay = 0
	}

	_, err = q.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(q.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: int32(delay / time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// Receive long-polls SQS for conversion tasks. Messages with bodies that do
// not parse are acknowledged and dropped so a poison payload cannot wedge
// the queue.
func (q *SQSQueue) Receive(ctx context.Context) ([]Message, error) {
	result, err := q.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.QueueURL),
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     int32(q.WaitTime / time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages from SQS: %w", err)
	}

	messages := make([]Message, 0, len(result.Messages))
	for _, raw := range result.Messages {
		var body taskBody
		if err := json.Unmarshal([]byte(aws.ToString(raw.Body)), &body); err != nil || body.JobID == "" {
			_ = q.Ack(ctx, Message{Handle: aws.ToString(raw.ReceiptHandle)})
			continue
		}
		messages = append(messages, Message{
			JobID:  body.JobID,
			Handle: aws.ToString(raw.ReceiptHandle),
		})
	}

	return messages, nil
}

// Ack deletes the message so SQS never redelivers it.
func (q *SQSQueue) Ack(ctx context.Context, msg Message) error {
	_, err := q.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.QueueURL),
		ReceiptHandle: aws.String(msg.Handle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message from SQS: %w", err)
	}

	return nil
}

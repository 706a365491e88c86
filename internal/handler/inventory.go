package handler

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/hillalee/s3-lister/internal/logger"
	"github.com/hillalee/s3-lister/internal/notifier"
)

// Notifier runs one inventory notification
type Notifier interface {
	Notify(ctx context.Context) (*notifier.Result, error)
}

// Response is the JSON document returned to the Lambda caller
type Response struct {
	Status    string   `json:"status"`
	Files     []string `json:"files"`
	Digest    string   `json:"digest"`
	MessageID string   `json:"message_id"`
}

type InventoryHandler struct {
	notifier Notifier
}

func NewInventoryHandler(n Notifier) *InventoryHandler {
	return &InventoryHandler{notifier: n}
}

// Handle serves one Lambda invocation. The event payload does not influence
// the result; S3 event records are only logged.
func (h *InventoryHandler) Handle(ctx context.Context, payload json.RawMessage) (Response, error) {
	invocationID := invocationID(ctx)
	logger.Infof("[InventoryHandler] Invocation %s started", invocationID)
	logTrigger(invocationID, payload)

	res, err := h.notifier.Notify(ctx)
	if err != nil {
		logger.Errorf("[InventoryHandler] Invocation %s failed: %v", invocationID, err)
		return Response{}, err
	}

	logger.Infof("[InventoryHandler] Invocation %s succeeded: %d file(s), messageId=%s", invocationID, len(res.Keys), res.MessageID)

	files := res.Keys
	if files == nil {
		files = []string{}
	}

	return Response{
		Status:    res.Status,
		Files:     files,
		Digest:    res.Digest,
		MessageID: res.MessageID,
	}, nil
}

// invocationID returns the Lambda request id, or a random id when running
// outside the Lambda runtime
func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

func logTrigger(invocationID string, payload json.RawMessage) {
	if len(payload) == 0 {
		logger.Debugf("[InventoryHandler] Invocation %s has no payload", invocationID)
		return
	}

	var event events.S3Event
	if err := json.Unmarshal(payload, &event); err != nil || len(event.Records) == 0 {
		logger.Debugf("[InventoryHandler] Invocation %s triggered manually (%d byte payload)", invocationID, len(payload))
		return
	}

	for _, record := range event.Records {
		logger.Infof("[InventoryHandler] Invocation %s triggered by %s on %s/%s",
			invocationID, record.EventName, record.S3.Bucket.Name, record.S3.Object.Key)
	}
}

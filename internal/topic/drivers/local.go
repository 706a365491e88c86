package drivers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hillalee/s3-lister/internal/logger"
)

// OutboxMessage is one line of the local outbox file
type OutboxMessage struct {
	MessageID   string    `json:"message_id"`
	Topic       string    `json:"topic"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
}

// LocalOutbox appends published messages as JSON lines to a file, standing
// in for a notification service during local runs
type LocalOutbox struct {
	path  string
	topic string
	mu    sync.Mutex
}

func NewLocalOutbox(path, topic string) (*LocalOutbox, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outbox path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create outbox directory: %w", err)
	}

	logger.Infof("[Local outbox] Writing messages for %s to %s", topic, absPath)
	return &LocalOutbox{path: absPath, topic: topic}, nil
}

func (o *LocalOutbox) Topic() string {
	return o.topic
}

func (o *LocalOutbox) Publish(ctx context.Context, subject, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg := OutboxMessage{
		MessageID:   uuid.NewString(),
		Topic:       o.topic,
		Subject:     subject,
		Body:        body,
		PublishedAt: time.Now().UTC(),
	}

	line, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}
	line = append(line, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := os.OpenFile(o.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open outbox: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(line); err != nil {
		return "", fmt.Errorf("failed to write outbox: %w", err)
	}

	logger.Debugf("[Local outbox] Published message %s to %s", msg.MessageID, o.topic)
	return msg.MessageID, nil
}

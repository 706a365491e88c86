package topic

import (
	"context"
)

// Publisher delivers a message to every subscriber of one topic
type Publisher interface {
	// Topic returns the topic identifier the driver was created for
	Topic() string

	// Publish sends subject and body as one message and returns the
	// provider-assigned message id
	Publish(ctx context.Context, subject, body string) (string, error)
}

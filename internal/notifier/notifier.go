package notifier

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/hillalee/s3-lister/internal/logger"
	"lukechampine.com/blake3"
)

const (
	// StatusSuccess is reported by every invocation that listed and published
	StatusSuccess = "success"

	// EmptyBody is published verbatim when the bucket holds no objects
	EmptyBody = "Bucket is empty"

	subjectPrefix = "S3 Bucket Contents: "
	headerFormat  = "The following files are in the bucket %s:"
)

var (
	ErrMissingStoreID = errors.New("store identifier is required")
	ErrMissingTopicID = errors.New("topic identifier is required")
)

// Lister enumerates the keys of one store
type Lister interface {
	ListKeys(ctx context.Context) ([]string, error)
}

// Publisher sends one message to a topic
type Publisher interface {
	Publish(ctx context.Context, subject, body string) (string, error)
}

// Config names the store to inventory and the topic to notify
type Config struct {
	StoreID string
	TopicID string
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.StoreID) == "" {
		return ErrMissingStoreID
	}
	if strings.TrimSpace(c.TopicID) == "" {
		return ErrMissingTopicID
	}
	return nil
}

// Message is the rendered notification for one inventory snapshot
type Message struct {
	Subject string
	Body    string
}

// Result describes a successful invocation
type Result struct {
	Status    string
	Keys      []string
	MessageID string
	Digest    string
}

// Notifier lists a store and publishes its inventory to a topic. It keeps
// no state between calls; every call takes a fresh snapshot and publishes.
type Notifier struct {
	cfg       Config
	lister    Lister
	publisher Publisher
}

func New(cfg Config, lister Lister, publisher Publisher) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lister == nil || publisher == nil {
		return nil, errors.New("notifier: lister and publisher are required")
	}

	return &Notifier{
		cfg:       cfg,
		lister:    lister,
		publisher: publisher,
	}, nil
}

// Notify takes one inventory snapshot of the store and publishes it. A
// listing failure returns a *ListError without publishing; a publish
// failure returns a *PublishError.
func (n *Notifier) Notify(ctx context.Context) (*Result, error) {
	keys, err := n.lister.ListKeys(ctx)
	if err != nil {
		logger.Errorf("[Notifier] Failed to list store %s: %v", n.cfg.StoreID, err)
		return nil, &ListError{StoreID: n.cfg.StoreID, Err: err}
	}
	if keys == nil {
		keys = []string{}
	}

	logger.Infof("[Notifier] Listed %d object(s) in %s", len(keys), n.cfg.StoreID)

	msg := Render(n.cfg.StoreID, keys)
	messageID, err := n.publisher.Publish(ctx, msg.Subject, msg.Body)
	if err != nil {
		logger.Errorf("[Notifier] Failed to publish to %s: %v", n.cfg.TopicID, err)
		return nil, &PublishError{TopicID: n.cfg.TopicID, Err: err}
	}

	logger.Infof("[Notifier] Published inventory of %s to %s (messageId=%s)", n.cfg.StoreID, n.cfg.TopicID, messageID)

	return &Result{
		Status:    StatusSuccess,
		Keys:      keys,
		MessageID: messageID,
		Digest:    Digest(keys),
	}, nil
}

// Render builds the notification for storeID holding keys. Keys keep the
// order the store returned them in.
func Render(storeID string, keys []string) Message {
	msg := Message{Subject: subjectPrefix + storeID}

	if len(keys) == 0 {
		msg.Body = EmptyBody
		return msg
	}

	var b strings.Builder
	fmt.Fprintf(&b, headerFormat, storeID)
	for _, key := range keys {
		b.WriteByte('\n')
		b.WriteString(key)
	}
	msg.Body = b.String()
	return msg
}

// Digest returns the BLAKE3-256 hex digest of a snapshot
func Digest(keys []string) string {
	h := blake3.New(32, nil)
	for i, key := range keys {
		if i > 0 {
			h.Write([]byte{'\n'})
		}
		h.Write([]byte(key))
	}
	return hex.EncodeToString(h.Sum(nil))
}

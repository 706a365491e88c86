package drivers

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOutbox(t *testing.T, path string) []OutboxMessage {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var msgs []OutboxMessage
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var msg OutboxMessage
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &msg))
		msgs = append(msgs, msg)
	}
	require.NoError(t, scanner.Err())
	return msgs
}

func TestLocalOutboxAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "outbox.jsonl")
	outbox, err := NewLocalOutbox(path, "local-topic")
	require.NoError(t, err)

	ctx := context.Background()
	first, err := outbox.Publish(ctx, "one", "body one")
	require.NoError(t, err)
	second, err := outbox.Publish(ctx, "two", "line1\nline2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	msgs := readOutbox(t, path)
	require.Len(t, msgs, 2)
	assert.Equal(t, first, msgs[0].MessageID)
	assert.Equal(t, "local-topic", msgs[0].Topic)
	assert.Equal(t, "one", msgs[0].Subject)
	assert.Equal(t, "line1\nline2", msgs[1].Body)
}

func TestLocalOutboxCancelledContext(t *testing.T) {
	outbox, err := NewLocalOutbox(filepath.Join(t.TempDir(), "outbox.jsonl"), "local-topic")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = outbox.Publish(ctx, "subject", "body")
	assert.ErrorIs(t, err, context.Canceled)
}

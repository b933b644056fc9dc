package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilecare/clinic-api/pkg/logger"
	"github.com/smilecare/clinic-api/pkg/messaging"
)

func newTestBroker(t *testing.T) (messaging.Broker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	broker, err := NewRedisBroker(Config{
		URL:      "redis://" + mr.Addr(),
		PoolSize: 2,
	}, logger.NewLogger(nil))
	require.NoError(t, err)

	t.Cleanup(func() { broker.Close() })
	return broker, mr
}

func TestPublishSubscribe(t *testing.T) {
	broker, _ := newTestBroker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msgs, err := broker.Subscribe(ctx, "events")
	require.NoError(t, err)

	// Give the subscriber goroutine a moment to attach.
	time.Sleep(50 * time.Millisecond)

	event := messaging.Message{Type: "PATIENT_CREATE", Payload: map[string]interface{}{"id": "abc"}}
	require.NoError(t, broker.Publish(ctx, "events", event))

	select {
	case raw := <-msgs:
		var got messaging.Message
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "PATIENT_CREATE", got.Type)
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestNewRedisBrokerRejectsBadURL(t *testing.T) {
	_, err := NewRedisBroker(Config{URL: "not-a-url"}, logger.NewLogger(nil))
	assert.Error(t, err)
}

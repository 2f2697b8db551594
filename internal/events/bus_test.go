package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEventBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewEventBus(zaptest.NewLogger(t))

	var received []string
	handler := func(payload string) { received = append(received, payload) }
	require.NoError(t, bus.Subscribe("test.topic", handler))

	require.NoError(t, bus.Publish("test.topic", "hello"))
	require.NoError(t, bus.Publish("other.topic", "ignored"))

	assert.Equal(t, []string{"hello"}, received)
}

func TestEventBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewEventBus(zaptest.NewLogger(t))

	calls := 0
	handler := func(string) { calls++ }
	require.NoError(t, bus.Subscribe("test.topic", handler))
	require.NoError(t, bus.Publish("test.topic", "one"))

	require.NoError(t, bus.Unsubscribe("test.topic", handler))
	require.NoError(t, bus.Publish("test.topic", "two"))

	assert.Equal(t, 1, calls)
}

func TestEventBus_CloseRejectsFurtherUse(t *testing.T) {
	bus := NewEventBus(zaptest.NewLogger(t))

	require.NoError(t, bus.Subscribe("test.topic", func(string) {}))
	require.NoError(t, bus.Close())

	assert.Error(t, bus.Publish("test.topic", "late"))
	assert.Error(t, bus.Subscribe("test.topic", func(string) {}))

	// Closing twice is harmless.
	assert.NoError(t, bus.Close())
}

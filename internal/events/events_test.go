package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(Event{Type: EventLikeToggled, FileID: 1})

	select {
	case event := <-ch:
		assert.Equal(t, EventLikeToggled, event.Type)
		assert.Equal(t, int64(1), event.FileID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event was not delivered")
	}
}

func TestPublishScopedToFile(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(Event{Type: EventCommentCreated, FileID: 2})

	select {
	case event := <-ch:
		t.Fatalf("received event for the wrong file: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ch, cancel := bus.Subscribe(1)
	cancel()

	// Publishing after cancel must not panic or deliver.
	bus.Publish(Event{Type: EventCommentCreated, FileID: 1})

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")
}

func TestSlowSubscriberIsSkipped(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	// Fill the buffer without draining; extra events must be dropped
	// instead of blocking the publisher.
	for i := 0; i < 32; i++ {
		bus.Publish(Event{Type: EventLikeToggled, FileID: 1})
	}

	require.Len(t, ch, 16)
}

package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventType identifies what happened on a document.
type EventType string

const (
	EventCommentCreated EventType = "comment.created"
	EventLikeToggled    EventType = "like.toggled"
)

// Event is a single activity notification for one document.
type Event struct {
	Type      EventType   `json:"type"`
	FileID    int64       `json:"fileId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Bus fans document activity out to subscribers, keyed by file ID. Slow
// subscribers are skipped rather than blocking publishers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int64]map[chan Event]struct{}
	logger *zap.Logger
}

// NewBus creates an in-process event bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		subs:   make(map[int64]map[chan Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers for activity on one file. The returned cancel func
// must be called to release the subscription.
func (b *Bus) Subscribe(fileID int64) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	if b.subs[fileID] == nil {
		b.subs[fileID] = make(map[chan Event]struct{})
	}
	b.subs[fileID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[fileID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, fileID)
			}
		}
		b.mu.Unlock()
		close(ch)
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of the file.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[event.FileID] {
		select {
		case ch <- event:
		default:
			b.logger.Warn("Dropping event for slow subscriber",
				zap.Int64("file_id", event.FileID),
				zap.String("type", string(event.Type)),
			)
		}
	}
}

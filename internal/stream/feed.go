package stream

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// UpdateType labels the payload of a stream update.
const (
	UpdateSnapshot = "snapshot"
	UpdateAlert    = "alert"
)

// Update is one message pushed to connected dashboard clients.
type Update struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Subscriber is one connected dashboard client.
type Subscriber struct {
	ID      uuid.UUID
	Updates chan Update
	Done    chan struct{}
}

// Feed broadcasts pass results and alerts to websocket dashboard
// clients. Slow clients drop updates rather than block the pass.
type Feed struct {
	subscribers map[uuid.UUID]*Subscriber
	mu          sync.RWMutex
}

func NewFeed() *Feed {
	return &Feed{
		subscribers: make(map[uuid.UUID]*Subscriber),
	}
}

// Subscribe registers a new client.
func (f *Feed) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:      uuid.New(),
		Updates: make(chan Update, 16),
		Done:    make(chan struct{}),
	}

	f.mu.Lock()
	f.subscribers[sub.ID] = sub
	f.mu.Unlock()

	return sub
}

// Unsubscribe removes a client.
func (f *Feed) Unsubscribe(subID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, exists := f.subscribers[subID]; exists {
		close(sub.Done)
		delete(f.subscribers, subID)
	}
}

// Publish fans an update out to every subscriber. A subscriber with a
// full buffer misses the update; the next snapshot supersedes it.
func (f *Feed) Publish(update Update) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.subscribers {
		select {
		case sub.Updates <- update:
		case <-sub.Done:
		default:
		}
	}
}

// ServeWS pumps updates to one websocket connection until the client
// disconnects or the context ends.
func (f *Feed) ServeWS(ctx context.Context, conn *websocket.Conn) {
	sub := f.Subscribe()
	defer func() {
		f.Unsubscribe(sub.ID)
		conn.Close()
	}()

	// Reader goroutine detects client disconnects.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update := <-sub.Updates:
			data, err := json.Marshal(update)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-readerDone:
			return
		case <-sub.Done:
			return
		case <-ctx.Done():
			return
		}
	}
}

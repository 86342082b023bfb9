package stream_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camerpulse/camerpulse-sub015/internal/stream"
)

func TestFeed(t *testing.T) {
	t.Run("should deliver updates to subscribers", func(t *testing.T) {
		feed := stream.NewFeed()
		sub := feed.Subscribe()
		defer feed.Unsubscribe(sub.ID)

		feed.Publish(stream.Update{Type: stream.UpdateAlert, Timestamp: time.Now()})

		select {
		case update := <-sub.Updates:
			assert.Equal(t, stream.UpdateAlert, update.Type)
		case <-time.After(time.Second):
			t.Fatal("expected an update")
		}
	})

	t.Run("should not block on a slow subscriber", func(t *testing.T) {
		feed := stream.NewFeed()
		sub := feed.Subscribe()
		defer feed.Unsubscribe(sub.ID)

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Buffer is 16; publishing more must drop, not block.
			for i := 0; i < 100; i++ {
				feed.Publish(stream.Update{Type: stream.UpdateSnapshot})
			}
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("publish blocked on a full subscriber buffer")
		}
	})

	t.Run("should stop delivering after unsubscribe", func(t *testing.T) {
		feed := stream.NewFeed()
		sub := feed.Subscribe()

		feed.Unsubscribe(sub.ID)
		feed.Publish(stream.Update{Type: stream.UpdateSnapshot})

		select {
		case <-sub.Done:
		default:
			t.Fatal("expected Done to be closed")
		}
	})

	t.Run("should fan out to multiple subscribers", func(t *testing.T) {
		feed := stream.NewFeed()
		first := feed.Subscribe()
		second := feed.Subscribe()
		defer feed.Unsubscribe(first.ID)
		defer feed.Unsubscribe(second.ID)

		feed.Publish(stream.Update{Type: stream.UpdateAlert})

		for _, sub := range []*stream.Subscriber{first, second} {
			select {
			case update := <-sub.Updates:
				require.Equal(t, stream.UpdateAlert, update.Type)
			case <-time.After(time.Second):
				t.Fatal("expected an update")
			}
		}
	})
}

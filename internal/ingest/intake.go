package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
	"github.com/camerpulse/camerpulse-sub015/pkg/messaging"
)

// ErrMissingAuthor rejects events with no author token: without one the
// event can never join an author group.
var ErrMissingAuthor = errors.New("event has no author token")

// Intake feeds sentiment events from NATS into the store. Multiple
// engine instances share the work through a queue group.
type Intake struct {
	store *Store
	nats  *messaging.Client
}

func NewIntake(store *Store, natsClient *messaging.Client) *Intake {
	return &Intake{store: store, nats: natsClient}
}

// Start subscribes to the sentiment event subject.
func (i *Intake) Start(ctx context.Context) error {
	return i.nats.QueueSubscribe(messaging.SubjectSentimentEvents, messaging.IntakeQueue, func(msg *nats.Msg) {
		var wire messaging.SentimentEventMsg
		if err := json.Unmarshal(msg.Data, &wire); err != nil {
			log.Printf("intake: dropping malformed event: %v", err)
			return
		}

		ev, err := FromWire(wire)
		if err != nil {
			log.Printf("intake: dropping event: %v", err)
			return
		}

		if err := i.store.Insert(ctx, &ev); err != nil {
			log.Printf("intake: failed to store event: %v", err)
		}
	})
}

// FromWire validates a wire event and applies the documented defaults:
// missing timestamps become receipt time, scores outside [-1,1] are
// dropped, engagement counts never go negative.
func FromWire(wire messaging.SentimentEventMsg) (personas.SentimentEvent, error) {
	if wire.AuthorToken == "" {
		return personas.SentimentEvent{}, ErrMissingAuthor
	}

	createdAt := wire.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	score := wire.SentimentScore
	if score != nil && (*score < -1 || *score > 1) {
		score = nil
	}

	return personas.SentimentEvent{
		AuthorToken:    wire.AuthorToken,
		Region:         wire.Region,
		Text:           wire.Text,
		SentimentScore: score,
		Emotions:       wire.Emotions,
		Topics:         wire.Topics,
		Engagement: personas.Engagement{
			Likes:    clampNonNegative(wire.Likes),
			Shares:   clampNonNegative(wire.Shares),
			Comments: clampNonNegative(wire.Comments),
		},
		CreatedAt: createdAt,
	}, nil
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

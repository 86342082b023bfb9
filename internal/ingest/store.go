package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

// Store persists sentiment events in Postgres and serves the bounded
// recent window the pipeline recomputes from.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the events table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sentiment_events (
			id              TEXT PRIMARY KEY,
			author_token    TEXT NOT NULL,
			region          TEXT,
			text            TEXT NOT NULL,
			sentiment_score DOUBLE PRECISION,
			emotions        TEXT,
			topics          TEXT,
			likes           INTEGER NOT NULL DEFAULT 0,
			shares          INTEGER NOT NULL DEFAULT 0,
			comments        INTEGER NOT NULL DEFAULT 0,
			created_at      TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"CREATE INDEX IF NOT EXISTS idx_sentiment_events_created_at ON sentiment_events (created_at DESC)")
	if err != nil {
		return fmt.Errorf("failed to ensure index: %w", err)
	}
	return nil
}

// Insert stores one event, assigning an ID when the caller left it
// empty.
func (s *Store) Insert(ctx context.Context, ev *personas.SentimentEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	emotions, err := json.Marshal(ev.Emotions)
	if err != nil {
		return fmt.Errorf("failed to marshal emotions: %w", err)
	}
	topics, err := json.Marshal(ev.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}

	var region sql.NullString
	if ev.Region != "" {
		region = sql.NullString{String: ev.Region, Valid: true}
	}
	var score sql.NullFloat64
	if ev.SentimentScore != nil {
		score = sql.NullFloat64{Float64: *ev.SentimentScore, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sentiment_events
			(id, author_token, region, text, sentiment_score, emotions, topics, likes, shares, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		ev.ID, ev.AuthorToken, region, ev.Text, score,
		string(emotions), string(topics),
		ev.Engagement.Likes, ev.Engagement.Shares, ev.Engagement.Comments,
		ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// RecentWindow loads the most recent events across all authors and
// regions, newest first.
func (s *Store) RecentWindow(ctx context.Context, limit int) ([]personas.SentimentEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author_token, region, text, sentiment_score, emotions, topics, likes, shares, comments, created_at
		FROM sentiment_events
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []personas.SentimentEvent
	for rows.Next() {
		var ev personas.SentimentEvent
		var region sql.NullString
		var score sql.NullFloat64
		var emotions, topics sql.NullString

		err := rows.Scan(&ev.ID, &ev.AuthorToken, &region, &ev.Text, &score,
			&emotions, &topics,
			&ev.Engagement.Likes, &ev.Engagement.Shares, &ev.Engagement.Comments,
			&ev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		if region.Valid {
			ev.Region = region.String
		}
		if score.Valid {
			v := score.Float64
			ev.SentimentScore = &v
		}
		if emotions.Valid && emotions.String != "" {
			json.Unmarshal([]byte(emotions.String), &ev.Emotions)
		}
		if topics.Valid && topics.String != "" {
			json.Unmarshal([]byte(topics.String), &ev.Topics)
		}

		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

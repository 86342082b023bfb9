package personas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

func scored(score float64, emotions ...string) personas.SentimentEvent {
	return personas.SentimentEvent{
		AuthorToken:    "u1",
		Text:           "text",
		SentimentScore: &score,
		Emotions:       emotions,
	}
}

func TestBuildEmotionalProfile(t *testing.T) {
	t.Run("should tally emotions and rank the top three", func(t *testing.T) {
		group := []personas.SentimentEvent{
			scored(0, "anger", "fear"),
			scored(0, "anger", "hope"),
			scored(0, "anger", "hope", "joy"),
		}

		profile := personas.BuildEmotionalProfile(group)

		assert.Equal(t, []string{"anger", "hope", "fear"}, profile.DominantEmotions)
		assert.Equal(t, 3, profile.EmotionCounts["anger"])
		assert.Equal(t, 2, profile.EmotionCounts["hope"])
		assert.Equal(t, 1, profile.EmotionCounts["joy"])
	})

	t.Run("should break count ties by first appearance", func(t *testing.T) {
		group := []personas.SentimentEvent{
			scored(0, "fear", "hope"),
			scored(0, "joy", "pride"),
		}

		profile := personas.BuildEmotionalProfile(group)

		// All counts are 1; the first three distinct emotions win.
		assert.Equal(t, []string{"fear", "hope", "joy"}, profile.DominantEmotions)
	})

	t.Run("should average only scored events", func(t *testing.T) {
		group := []personas.SentimentEvent{
			scored(-0.6),
			{AuthorToken: "u1", Text: "unscored"},
			scored(-0.2),
		}

		profile := personas.BuildEmotionalProfile(group)

		assert.InDelta(t, -0.4, profile.MeanSentiment, 1e-9)
	})

	t.Run("should report zero mean sentiment with no scored events", func(t *testing.T) {
		group := []personas.SentimentEvent{
			{AuthorToken: "u1", Text: "a"},
			{AuthorToken: "u1", Text: "b"},
		}

		profile := personas.BuildEmotionalProfile(group)

		assert.Zero(t, profile.MeanSentiment)
	})

	t.Run("should yield an empty dominant list without emotion tags", func(t *testing.T) {
		profile := personas.BuildEmotionalProfile([]personas.SentimentEvent{scored(0.1)})

		assert.Empty(t, profile.DominantEmotions)
		assert.Empty(t, profile.EmotionCounts)
	})
}

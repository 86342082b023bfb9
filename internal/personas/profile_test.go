package personas_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

func TestBuildProfile(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := personas.DefaultConfig()

	t.Run("should take the region of the most recent event", func(t *testing.T) {
		score := -0.1
		group := []personas.SentimentEvent{
			{AuthorToken: "u1", Region: "Centre", SentimentScore: &score, CreatedAt: base},
			{AuthorToken: "u1", Region: "Littoral", SentimentScore: &score, CreatedAt: base.Add(-time.Hour)},
			{AuthorToken: "u1", Region: "Littoral", SentimentScore: &score, CreatedAt: base.Add(-2 * time.Hour)},
		}

		profile := personas.BuildProfile("u1", group, cfg)

		assert.Equal(t, "Centre", profile.Region)
		assert.Equal(t, base, profile.LastActive)
		assert.Equal(t, 3, profile.PostCount)
	})

	t.Run("should default a missing region to Unknown", func(t *testing.T) {
		group := []personas.SentimentEvent{
			{AuthorToken: "u1", CreatedAt: base},
			{AuthorToken: "u1", CreatedAt: base.Add(-time.Hour)},
			{AuthorToken: "u1", CreatedAt: base.Add(-2 * time.Hour)},
		}

		profile := personas.BuildProfile("u1", group, cfg)

		assert.Equal(t, personas.UnknownRegion, profile.Region)
	})

	t.Run("should keep at most five distinct topics in first-seen order", func(t *testing.T) {
		group := []personas.SentimentEvent{
			{AuthorToken: "u1", Topics: []string{"fuel", "roads", "fuel"}, CreatedAt: base},
			{AuthorToken: "u1", Topics: []string{"schools", "water", "power", "taxes", "roads"}, CreatedAt: base.Add(-time.Hour)},
			{AuthorToken: "u1", CreatedAt: base.Add(-2 * time.Hour)},
		}

		profile := personas.BuildProfile("u1", group, cfg)

		assert.Equal(t, []string{"fuel", "roads", "schools", "water", "power"}, profile.Topics)
	})
}

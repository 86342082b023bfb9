package clusters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/camerpulse/camerpulse-sub015/internal/clusters"
	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

func profile(token, region string, persona personas.Persona, influence float64) personas.PersonaProfile {
	return personas.PersonaProfile{
		AuthorToken:    token,
		Persona:        persona,
		Region:         region,
		InfluenceScore: influence,
	}
}

func TestBuild(t *testing.T) {
	t.Run("should produce one cluster per distinct region in first-seen order", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaAngryVoter, 50),
			profile("u2", "Littoral", personas.PersonaCivicMobilizer, 60),
			profile("u3", "Centre", personas.PersonaHopefulPatriot, 40),
		}

		result := clusters.Build(profiles, 5)

		assert.Len(t, result, 2)
		assert.Equal(t, "Centre", result[0].Region)
		assert.Equal(t, "Littoral", result[1].Region)
	})

	t.Run("should report zero counts for absent personas", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaAngryVoter, 50),
		}

		result := clusters.Build(profiles, 5)

		distribution := result[0].PersonaDistribution
		assert.Len(t, distribution, 5)
		assert.Equal(t, 1, distribution[personas.PersonaAngryVoter])
		assert.Equal(t, 0, distribution[personas.PersonaCivicMobilizer])
		assert.Equal(t, 0, distribution[personas.PersonaApatheticObserver])
	})

	t.Run("should keep distribution totals equal to author counts", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaAngryVoter, 50),
			profile("u2", "Centre", personas.PersonaAngryVoter, 30),
			profile("u3", "Centre", personas.PersonaApatheticObserver, 30),
			profile("u4", "Nord", personas.PersonaHopefulPatriot, 20),
		}

		for _, cluster := range clusters.Build(profiles, 5) {
			total := 0
			for _, count := range cluster.PersonaDistribution {
				total += count
			}
			assert.Equal(t, cluster.TotalAuthors, total)
		}
	})

	t.Run("should rank top influencers descending and cap the list", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaAngryVoter, 30),
			profile("u2", "Centre", personas.PersonaCivicMobilizer, 90),
			profile("u3", "Centre", personas.PersonaApatheticObserver, 60),
		}

		result := clusters.Build(profiles, 2)

		influencers := result[0].TopInfluencers
		assert.Len(t, influencers, 2)
		assert.Equal(t, 90.0, influencers[0].InfluenceScore)
		assert.Equal(t, 60.0, influencers[1].InfluenceScore)
	})

	t.Run("should break influence ties by profile order", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaAngryVoter, 50),
			profile("u2", "Centre", personas.PersonaCivicMobilizer, 50),
		}

		result := clusters.Build(profiles, 5)

		assert.Equal(t, personas.PersonaAngryVoter, result[0].TopInfluencers[0].Persona)
		assert.Equal(t, personas.PersonaCivicMobilizer, result[0].TopInfluencers[1].Persona)
	})

	t.Run("should build non-identifying rank aliases", func(t *testing.T) {
		profiles := []personas.PersonaProfile{
			profile("u1", "Centre", personas.PersonaCivicMobilizer, 80),
		}

		result := clusters.Build(profiles, 5)

		assert.Equal(t, "civic_mobilizer_Centre_1", result[0].TopInfluencers[0].RankAlias)
	})

	t.Run("should return no clusters for no profiles", func(t *testing.T) {
		assert.Empty(t, clusters.Build(nil, 5))
	})
}

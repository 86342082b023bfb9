package clusters

import (
	"fmt"
	"sort"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

// RegionalCluster aggregates the persona/influence data of every
// classified author within one region.
type RegionalCluster struct {
	Region              string                   `json:"region"`
	PersonaDistribution map[personas.Persona]int `json:"persona_distribution"`
	TotalAuthors        int                      `json:"total_authors"`
	TopInfluencers      []Influencer             `json:"top_influencers"`
}

// Influencer is one entry in a region's top-influencer ranking. The
// rank alias is a synthetic display label derived from public aggregate
// fields; it is not an anonymization mechanism.
type Influencer struct {
	Persona        personas.Persona `json:"persona"`
	InfluenceScore float64          `json:"influence_score"`
	RankAlias      string           `json:"rank_alias"`
}

// Build aggregates persona profiles into one cluster per distinct
// region, in order of first appearance. Every cluster reports a count
// for all five personas (zero included) and its topN highest-influence
// authors, ties broken by the incoming profile order.
func Build(profiles []personas.PersonaProfile, topN int) []RegionalCluster {
	byRegion := make(map[string][]personas.PersonaProfile)
	var regions []string

	for _, p := range profiles {
		if _, seen := byRegion[p.Region]; !seen {
			regions = append(regions, p.Region)
		}
		byRegion[p.Region] = append(byRegion[p.Region], p)
	}

	clusters := make([]RegionalCluster, 0, len(regions))
	for _, region := range regions {
		clusters = append(clusters, buildOne(region, byRegion[region], topN))
	}
	return clusters
}

func buildOne(region string, profiles []personas.PersonaProfile, topN int) RegionalCluster {
	distribution := make(map[personas.Persona]int, len(personas.AllPersonas()))
	for _, p := range personas.AllPersonas() {
		distribution[p] = 0
	}
	for _, p := range profiles {
		distribution[p.Persona]++
	}

	ranked := make([]personas.PersonaProfile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InfluenceScore > ranked[j].InfluenceScore
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	influencers := make([]Influencer, 0, len(ranked))
	for rank, p := range ranked {
		influencers = append(influencers, Influencer{
			Persona:        p.Persona,
			InfluenceScore: p.InfluenceScore,
			RankAlias:      fmt.Sprintf("%s_%s_%d", p.Persona, region, rank+1),
		})
	}

	return RegionalCluster{
		Region:              region,
		PersonaDistribution: distribution,
		TotalAuthors:        len(profiles),
		TopInfluencers:      influencers,
	}
}

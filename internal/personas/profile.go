package personas

import "time"

const maxProfileTopics = 5

// BuildProfile runs the per-author leg of the pipeline for one group:
// emotional profiling, persona classification, influence scoring, and
// trend detection. The group must be non-empty and ordered
// most-recent-first. Eligibility filtering is the caller's concern.
func BuildProfile(token string, group []SentimentEvent, cfg Config) PersonaProfile {
	profile := BuildEmotionalProfile(group)

	region := group[0].Region
	if region == "" {
		region = UnknownRegion
	}

	return PersonaProfile{
		AuthorToken:      token,
		Persona:          Classify(profile, ConcatText(group)),
		Region:           region,
		PostCount:        len(group),
		DominantEmotions: profile.DominantEmotions,
		InfluenceScore:   InfluenceScore(group, cfg.InfluenceCap),
		LastActive:       lastActive(group),
		Topics:           collectTopics(group),
		Trend:            DetectTrend(group, cfg.MinPostsForTrend, cfg.TrendStabilityBand),
	}
}

func lastActive(group []SentimentEvent) time.Time {
	latest := group[0].CreatedAt
	for _, ev := range group[1:] {
		if ev.CreatedAt.After(latest) {
			latest = ev.CreatedAt
		}
	}
	return latest
}

// collectTopics gathers up to five distinct topics in the order they
// appear across the group's events.
func collectTopics(group []SentimentEvent) []string {
	seen := make(map[string]bool)
	var topics []string
	for _, ev := range group {
		for _, topic := range ev.Topics {
			if seen[topic] {
				continue
			}
			seen[topic] = true
			topics = append(topics, topic)
			if len(topics) == maxProfileTopics {
				return topics
			}
		}
	}
	return topics
}

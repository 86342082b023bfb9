package personas

import "sort"

const dominantEmotionCount = 3

// BuildEmotionalProfile computes the emotional fingerprint of one
// author group: emotion tag counts, the top three dominant emotions
// (ties broken by first appearance in the group), and the mean of all
// scored events. A group with no scored events has mean sentiment 0;
// a group with no emotion tags has an empty dominant list.
func BuildEmotionalProfile(group []SentimentEvent) EmotionalProfile {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var distinct []string

	for _, ev := range group {
		for _, emotion := range ev.Emotions {
			if _, seen := counts[emotion]; !seen {
				firstSeen[emotion] = len(distinct)
				distinct = append(distinct, emotion)
			}
			counts[emotion]++
		}
	}

	ranked := make([]string, len(distinct))
	copy(ranked, distinct)
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})
	if len(ranked) > dominantEmotionCount {
		ranked = ranked[:dominantEmotionCount]
	}

	var sum float64
	var scored int
	for _, ev := range group {
		if ev.SentimentScore != nil {
			sum += *ev.SentimentScore
			scored++
		}
	}
	mean := 0.0
	if scored > 0 {
		mean = sum / float64(scored)
	}

	return EmotionalProfile{
		DominantEmotions: ranked,
		MeanSentiment:    mean,
		EmotionCounts:    counts,
	}
}

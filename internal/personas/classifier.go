package personas

import "strings"

var (
	mobilizerKeywords = []string{"action", "vote", "unite", "change", "together", "organize"}
	sarcasmKeywords   = []string{"obviously", "brilliant", "genius", "perfect", "amazing"}
)

// Classify maps an emotional profile plus the author's concatenated
// lowercase text to exactly one persona. Rules run in fixed priority
// order and the first match wins; an author matching none of them is an
// apathetic observer. The function never fails.
func Classify(profile EmotionalProfile, text string) Persona {
	switch {
	case profile.MeanSentiment < -0.4 && hasEmotion(profile.DominantEmotions, "anger"):
		return PersonaAngryVoter
	case profile.MeanSentiment > 0.3 && (hasEmotion(profile.DominantEmotions, "hope") || hasEmotion(profile.DominantEmotions, "pride")):
		return PersonaHopefulPatriot
	case containsAny(text, mobilizerKeywords):
		return PersonaCivicMobilizer
	case profile.MeanSentiment < -0.2 && containsAny(text, sarcasmKeywords):
		return PersonaSarcasticDissenter
	default:
		return PersonaApatheticObserver
	}
}

// ConcatText joins the group's texts lowercased for keyword matching.
func ConcatText(group []SentimentEvent) string {
	var b strings.Builder
	for i, ev := range group {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToLower(ev.Text))
	}
	return b.String()
}

func hasEmotion(dominant []string, emotion string) bool {
	for _, e := range dominant {
		if e == emotion {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

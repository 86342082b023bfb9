package personas

import "time"

// Persona is one of the five behavioral archetypes an author can be
// assigned after classification.
type Persona string

const (
	PersonaAngryVoter         Persona = "angry_voter"
	PersonaSarcasticDissenter Persona = "sarcastic_dissenter"
	PersonaHopefulPatriot     Persona = "hopeful_patriot"
	PersonaCivicMobilizer     Persona = "civic_mobilizer"
	PersonaApatheticObserver  Persona = "apathetic_observer"
)

// AllPersonas returns the fixed archetype set in its canonical order.
func AllPersonas() []Persona {
	return []Persona{
		PersonaAngryVoter,
		PersonaSarcasticDissenter,
		PersonaHopefulPatriot,
		PersonaCivicMobilizer,
		PersonaApatheticObserver,
	}
}

// Trend labels the direction of sentiment change within an author's
// recent history.
type Trend string

const (
	TrendStable     Trend = "stable"
	TrendEscalating Trend = "escalating"
	TrendDeclining  Trend = "declining"
)

// UnknownRegion is assigned to events that carry no region label.
const UnknownRegion = "Unknown"

// Engagement holds per-event engagement counts. Missing counts are zero.
type Engagement struct {
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
}

// Total returns the combined engagement count.
func (e Engagement) Total() int {
	return e.Likes + e.Shares + e.Comments
}

// SentimentEvent is one sentiment-tagged text event from the tagging
// pipeline. Author identity is an opaque token; events sharing a token
// are assumed to originate from one author. SentimentScore is nil when
// the tagger produced no score.
type SentimentEvent struct {
	ID             string     `json:"id"`
	AuthorToken    string     `json:"author_token"`
	Region         string     `json:"region,omitempty"`
	Text           string     `json:"text"`
	SentimentScore *float64   `json:"sentiment_score,omitempty"`
	Emotions       []string   `json:"emotions,omitempty"`
	Topics         []string   `json:"topics,omitempty"`
	Engagement     Engagement `json:"engagement"`
	CreatedAt      time.Time  `json:"created_at"`
}

// EmotionalProfile is the aggregate emotional fingerprint of one
// author's event group.
type EmotionalProfile struct {
	DominantEmotions []string       `json:"dominant_emotions"`
	MeanSentiment    float64        `json:"mean_sentiment"`
	EmotionCounts    map[string]int `json:"emotion_counts"`
}

// PersonaProfile is the classification result for one eligible author.
// Region is the region of the author's most recent event.
type PersonaProfile struct {
	AuthorToken      string    `json:"author_token"`
	Persona          Persona   `json:"persona"`
	Region           string    `json:"region"`
	PostCount        int       `json:"post_count"`
	DominantEmotions []string  `json:"dominant_emotions"`
	InfluenceScore   float64   `json:"influence_score"`
	LastActive       time.Time `json:"last_active"`
	Topics           []string  `json:"topics,omitempty"`
	Trend            Trend     `json:"trend"`
}

// Config holds the tunable thresholds of the classification pipeline.
type Config struct {
	MinPostsForClassification int
	MinPostsForTrend          int
	TrendStabilityBand        float64
	InfluenceCap              float64
	TopInfluencersPerRegion   int
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		MinPostsForClassification: 3,
		MinPostsForTrend:          5,
		TrendStabilityBand:        0.1,
		InfluenceCap:              100,
		TopInfluencersPerRegion:   5,
	}
}

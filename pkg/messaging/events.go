package messaging

import "time"

// Subjects used by the persona engine.
const (
	SubjectSentimentEvents = "civic.sentiment.events"
	SubjectAlertsGenerated = "civic.alerts.generated"
	SubjectPassCompleted   = "civic.personas.pass"

	IntakeQueue = "persona-engine"
)

// SentimentEventMsg is the wire shape of one sentiment-tagged event
// from the tagging pipeline. Region, score, emotions, topics, and
// engagement are all optional; the engine fills documented defaults.
type SentimentEventMsg struct {
	AuthorToken    string    `json:"author_token"`
	Region         string    `json:"region,omitempty"`
	Text           string    `json:"text"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	Emotions       []string  `json:"emotions,omitempty"`
	Topics         []string  `json:"topics,omitempty"`
	Likes          int       `json:"likes,omitempty"`
	Shares         int       `json:"shares,omitempty"`
	Comments       int       `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AlertMsg is published once per alert emitted by a pass.
type AlertMsg struct {
	AlertID     string    `json:"alert_id"`
	Persona     string    `json:"persona"`
	Region      string    `json:"region"`
	Type        string    `json:"alert_type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PassCompletedMsg announces that a recompute pass finished.
type PassCompletedMsg struct {
	Authors    int       `json:"authors"`
	Regions    int       `json:"regions"`
	Alerts     int       `json:"alerts"`
	ComputedAt time.Time `json:"computed_at"`
}

package alerts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

// AlertType names the persona/trend/influence pattern that produced an
// alert.
type AlertType string

const (
	AlertToneShift      AlertType = "tone_shift"
	AlertInfluenceSurge AlertType = "influence_surge"
)

// Severity of an alert. Current rules emit low through high only.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is a derived notice that an alert-worthy persona pattern was
// observed in the current pass. IDs are derived from the triggering
// profile and rule, so repeated passes over the same batch produce
// identical alerts; consumers that persist alerts can deduplicate on ID.
// CreatedAt echoes the triggering author's last activity rather than
// the wall clock, keeping passes byte-identical.
type Alert struct {
	ID          string           `json:"id"`
	Persona     personas.Persona `json:"persona"`
	Region      string           `json:"region"`
	AuthorToken string           `json:"author_token"`
	Type        AlertType        `json:"alert_type"`
	Description string           `json:"description"`
	Severity    Severity         `json:"severity"`
	CreatedAt   time.Time        `json:"created_at"`
}

const (
	toneShiftHighInfluence  = 70
	influenceSurgeThreshold = 80
)

// Generate scans classified profiles for alert-worthy combinations. A
// profile can emit zero, one, or both alert types:
//
//   - tone_shift: an angry voter whose sentiment is escalating. High
//     severity above the influence threshold, medium otherwise.
//   - influence_surge: a civic mobilizer whose influence exceeds the
//     surge threshold (strict). Always medium.
//
// Alerts are regenerated fresh each pass; nothing is carried across
// invocations.
func Generate(profiles []personas.PersonaProfile) []Alert {
	var out []Alert

	for _, p := range profiles {
		if p.Trend == personas.TrendEscalating && p.Persona == personas.PersonaAngryVoter {
			severity := SeverityMedium
			if p.InfluenceScore > toneShiftHighInfluence {
				severity = SeverityHigh
			}
			out = append(out, newAlert(p, AlertToneShift, severity,
				fmt.Sprintf("escalating negative sentiment from an angry voter in %s", p.Region)))
		}

		if p.Persona == personas.PersonaCivicMobilizer && p.InfluenceScore > influenceSurgeThreshold {
			out = append(out, newAlert(p, AlertInfluenceSurge, SeverityMedium,
				fmt.Sprintf("high-influence civic mobilizer active in %s", p.Region)))
		}
	}

	return out
}

func newAlert(p personas.PersonaProfile, alertType AlertType, severity Severity, description string) Alert {
	return Alert{
		ID:          alertID(p, alertType),
		Persona:     p.Persona,
		Region:      p.Region,
		AuthorToken: p.AuthorToken,
		Type:        alertType,
		Description: description,
		Severity:    severity,
		CreatedAt:   p.LastActive,
	}
}

func alertID(p personas.PersonaProfile, alertType AlertType) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s", p.Persona, p.Region, p.AuthorToken, alertType)))
	return hex.EncodeToString(sum[:8])
}

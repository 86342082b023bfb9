package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/camerpulse/camerpulse-sub015/internal/alerts"
	"github.com/camerpulse/camerpulse-sub015/internal/clusters"
	"github.com/camerpulse/camerpulse-sub015/internal/personas"
)

// Result is the full derived view of one event batch. It is recomputed
// from scratch every pass; the only identities that survive across
// passes are author tokens and regions.
type Result struct {
	Profiles             []personas.PersonaProfile  `json:"profiles"`
	Clusters             []clusters.RegionalCluster `json:"clusters"`
	Alerts               []alerts.Alert             `json:"alerts"`
	NationalDistribution map[personas.Persona]int   `json:"national_distribution"`
}

// Pipeline is the stateless batch computation: events in, derived views
// out. It performs no I/O and holds no state between passes, so a
// caller may abandon a stale batch and start over at any time.
type Pipeline struct {
	cfg     personas.Config
	workers int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers bounds the per-author classification fan-out.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a pipeline with the given thresholds.
func New(cfg personas.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, workers: 4}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compute runs one full classification pass over a batch snapshot.
// Authors below the eligibility floor are omitted entirely. An empty
// batch yields empty collections and an all-zero national distribution,
// which is a valid terminal state.
//
// Classification fans out across authors because no cross-author state
// is touched; clustering and alerting wait for all profiles.
func (p *Pipeline) Compute(ctx context.Context, batch []personas.SentimentEvent) (*Result, error) {
	events := make([]personas.SentimentEvent, len(batch))
	copy(events, batch)
	personas.SortRecentFirst(events)

	groups, order := personas.GroupByAuthor(events)

	eligible := make([]string, 0, len(order))
	for _, token := range order {
		if len(groups[token]) >= p.cfg.MinPostsForClassification {
			eligible = append(eligible, token)
		}
	}

	profiles := make([]personas.PersonaProfile, len(eligible))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, token := range eligible {
		i, token := i, token
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			profiles[i] = personas.BuildProfile(token, groups[token], p.cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distribution := make(map[personas.Persona]int, len(personas.AllPersonas()))
	for _, persona := range personas.AllPersonas() {
		distribution[persona] = 0
	}
	for _, profile := range profiles {
		distribution[profile.Persona]++
	}

	return &Result{
		Profiles:             profiles,
		Clusters:             clusters.Build(profiles, p.cfg.TopInfluencersPerRegion),
		Alerts:               alerts.Generate(profiles),
		NationalDistribution: distribution,
	}, nil
}

package history

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/camerpulse/camerpulse-sub015/internal/pipeline"
)

// Recorder writes one measurement point per recompute pass to InfluxDB
// so operators can chart persona drift over time.
type Recorder struct {
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

func NewRecorder(url, token, org, bucket string) *Recorder {
	client := influxdb2.NewClient(url, token)
	return &Recorder{
		client: client,
		write:  client.WriteAPIBlocking(org, bucket),
	}
}

// RecordPass writes a national summary point plus one point per region.
func (r *Recorder) RecordPass(ctx context.Context, result *pipeline.Result, computedAt time.Time) error {
	fields := map[string]interface{}{
		"authors": len(result.Profiles),
		"regions": len(result.Clusters),
		"alerts":  len(result.Alerts),
	}
	for persona, count := range result.NationalDistribution {
		fields[string(persona)] = count
	}

	national := influxdb2.NewPoint("persona_pass",
		map[string]string{"scope": "national"},
		fields, computedAt)
	if err := r.write.WritePoint(ctx, national); err != nil {
		return fmt.Errorf("failed to write national point: %w", err)
	}

	for _, cluster := range result.Clusters {
		regionFields := map[string]interface{}{
			"authors": cluster.TotalAuthors,
		}
		for persona, count := range cluster.PersonaDistribution {
			regionFields[string(persona)] = count
		}

		point := influxdb2.NewPoint("persona_pass",
			map[string]string{"scope": "region", "region": cluster.Region},
			regionFields, computedAt)
		if err := r.write.WritePoint(ctx, point); err != nil {
			return fmt.Errorf("failed to write region point for %s: %w", cluster.Region, err)
		}
	}

	return nil
}

// Close releases the InfluxDB client.
func (r *Recorder) Close() {
	r.client.Close()
}

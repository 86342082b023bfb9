package circuit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/camerpulse/camerpulse-sub015/pkg/circuit"
)

var errBoom = errors.New("boom")

func failing() error    { return errBoom }
func succeeding() error { return nil }

func TestBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("should stay closed on success", func(t *testing.T) {
		b := circuit.NewBreaker(circuit.Config{Name: "test", MaxFailures: 3, Timeout: time.Minute})

		for i := 0; i < 10; i++ {
			assert.NoError(t, b.Execute(ctx, succeeding))
		}
		assert.Equal(t, circuit.StateClosed, b.State())
	})

	t.Run("should open after consecutive failures", func(t *testing.T) {
		b := circuit.NewBreaker(circuit.Config{Name: "test", MaxFailures: 3, Timeout: time.Minute})

		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, b.Execute(ctx, failing), errBoom)
		}
		assert.Equal(t, circuit.StateOpen, b.State())

		assert.ErrorIs(t, b.Execute(ctx, succeeding), circuit.ErrCircuitOpen)
	})

	t.Run("should reset the failure count on success", func(t *testing.T) {
		b := circuit.NewBreaker(circuit.Config{Name: "test", MaxFailures: 3, Timeout: time.Minute})

		b.Execute(ctx, failing)
		b.Execute(ctx, failing)
		b.Execute(ctx, succeeding)
		b.Execute(ctx, failing)
		b.Execute(ctx, failing)

		assert.Equal(t, circuit.StateClosed, b.State())
	})

	t.Run("should probe after the reset timeout and close on success", func(t *testing.T) {
		b := circuit.NewBreaker(circuit.Config{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})

		b.Execute(ctx, failing)
		assert.Equal(t, circuit.StateOpen, b.State())

		time.Sleep(20 * time.Millisecond)

		assert.NoError(t, b.Execute(ctx, succeeding))
		assert.Equal(t, circuit.StateClosed, b.State())
	})

	t.Run("should reopen when the probe fails", func(t *testing.T) {
		b := circuit.NewBreaker(circuit.Config{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})

		b.Execute(ctx, failing)
		time.Sleep(20 * time.Millisecond)

		assert.ErrorIs(t, b.Execute(ctx, failing), errBoom)
		assert.Equal(t, circuit.StateOpen, b.State())
	})

	t.Run("should notify on state changes", func(t *testing.T) {
		var transitions []string
		b := circuit.NewBreaker(circuit.Config{
			Name:        "loader",
			MaxFailures: 1,
			Timeout:     time.Minute,
			OnStateChange: func(name string, from, to circuit.State) {
				transitions = append(transitions, from.String()+"->"+to.String())
			},
		})

		b.Execute(ctx, failing)

		assert.Equal(t, []string{"closed->open"}, transitions)
	})
}

// Package simulator provides the two Simulator implementations: a placeholder
// that draws random but well-formed results and a statevector simulator that
// evolves the placed gates.
package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
)

const (
	PlaceholderName = "random"
	StatevectorName = "statevector"
)

// New returns the simulator registered under name.
func New(name string) (core.Simulator, error) {
	switch name {
	case PlaceholderName:
		return &Placeholder{}, nil
	case StatevectorName:
		return &Statevector{}, nil
	default:
		return nil, fmt.Errorf("%s is an unknown simulator", name)
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func checkQubits(c *circuit.Circuit) error {
	if c.QubitCount < circuit.MinQubits || c.QubitCount > circuit.MaxQubits {
		return fmt.Errorf("%w: %d qubits", common.ErrQubitBounds, c.QubitCount)
	}
	return nil
}

// bitstring renders basis index i with qubit q as character q.
func bitstring(i, n int) string {
	b := make([]byte, n)
	for q := 0; q < n; q++ {
		if i&(1<<q) != 0 {
			b[q] = '1'
		} else {
			b[q] = '0'
		}
	}
	return string(b)
}

func delayFromSetting() time.Duration {
	return time.Duration(core.GetGlobalSetting().Simulator.DelayMS) * time.Millisecond
}

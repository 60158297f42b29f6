package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"
)

// Placeholder ignores the gates. It draws uniform random weights for every
// bitstring, normalises them and draws a random Bloch vector per qubit, so
// only the shape of the result is meaningful.
type Placeholder struct {
	Seed  int64
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPlaceholder(seed int64, delay time.Duration) *Placeholder {
	return &Placeholder{
		Seed:  seed,
		Delay: delay,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Setup reads the seed and delay from the [simulator] setting. Seed 0 seeds
// from the clock.
func (p *Placeholder) Setup(_ *core.Conf) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Seed = core.GetGlobalSetting().Simulator.Seed
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	p.Delay = delayFromSetting()
	p.rng = rand.New(rand.NewSource(p.Seed))
	zap.L().Debug(fmt.Sprintf("[Placeholder] seed:%d/delay:%s", p.Seed, p.Delay))
	return nil
}

func (p *Placeholder) Name() string {
	return PlaceholderName
}

func (p *Placeholder) Simulate(ctx context.Context, c *circuit.Circuit) (*core.SimulationResult, error) {
	if err := checkQubits(c); err != nil {
		return nil, err
	}
	if err := wait(ctx, p.Delay); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(p.Seed))
	}
	n := c.QubitCount
	r := &core.SimulationResult{
		Probabilities: make(core.Probabilities, 1<<n),
		BlochVectors:  make([]core.BlochVector, n),
	}
	for _, b := range core.Bitstrings(n) {
		r.Probabilities[b] = p.rng.Float64()
	}
	r.Probabilities.Normalize()
	for q := range r.BlochVectors {
		r.BlochVectors[q] = core.BlochVector{
			X: p.rng.Float64()*2 - 1,
			Y: p.rng.Float64()*2 - 1,
			Z: p.rng.Float64()*2 - 1,
		}
	}
	zap.L().Debug(fmt.Sprintf("[Placeholder] simulated %d qubits", n))
	return r, nil
}

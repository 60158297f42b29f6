package core

import (
	"context"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"go.uber.org/dig"
)

// FixedSimulator returns the same result for every circuit. Tests use it to
// stand in for a real simulator.
type FixedSimulator struct {
	Result *SimulationResult
	Err    error
	Calls  int
}

func (f *FixedSimulator) Setup(*Conf) error { return nil }
func (f *FixedSimulator) Name() string      { return "fixed" }

func (f *FixedSimulator) Simulate(ctx context.Context, _ *circuit.Circuit) (*SimulationResult, error) {
	f.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.Result, f.Err
}

// UniformResult is the equal-weight distribution over n qubits with every
// Bloch vector at the origin.
func UniformResult(n int) *SimulationResult {
	r := &SimulationResult{
		Probabilities: make(Probabilities),
		BlochVectors:  make([]BlochVector, n),
	}
	for _, b := range Bitstrings(n) {
		r.Probabilities[b] = 1 / float64(int(1)<<n)
	}
	return r
}

func SCWithMemoryStore(sim Simulator) *SystemComponents {
	c := dig.New()
	c.Provide(func() CircuitStore { return &MemoryStore{} })
	c.Provide(func() Simulator { return sim })
	s := NewSystemComponents(c)
	s.Setup(&Conf{})
	return s
}

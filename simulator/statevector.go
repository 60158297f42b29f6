package simulator

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"go.uber.org/zap"
)

// State holds 2^n amplitudes. Bit q of a basis index is qubit q.
type State struct {
	Amplitudes []complex128
	NumQubits  int
}

func NewState(numQubits int) *State {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &State{Amplitudes: amps, NumQubits: numQubits}
}

// Apply evolves the state by one placement. MEASURE leaves the state alone.
func (s *State) Apply(p circuit.Placement) {
	q := p.Qubit
	switch p.Kind {
	case circuit.H:
		h := complex(1/math.Sqrt2, 0)
		s.pairs(q, func(a, b complex128) (complex128, complex128) {
			return h * (a + b), h * (a - b)
		})
	case circuit.X:
		s.pairs(q, func(a, b complex128) (complex128, complex128) { return b, a })
	case circuit.Y:
		s.pairs(q, func(a, b complex128) (complex128, complex128) { return -1i * b, 1i * a })
	case circuit.Z:
		s.phase(q, -1)
	case circuit.S:
		s.phase(q, 1i)
	case circuit.T:
		s.phase(q, cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.RX:
		theta := p.AngleOrDefault()
		c, js := complex(math.Cos(theta/2), 0), complex(0, -math.Sin(theta/2))
		s.pairs(q, func(a, b complex128) (complex128, complex128) {
			return c*a + js*b, js*a + c*b
		})
	case circuit.RY:
		theta := p.AngleOrDefault()
		c, sn := complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
		s.pairs(q, func(a, b complex128) (complex128, complex128) {
			return c*a - sn*b, sn*a + c*b
		})
	case circuit.RZ:
		phase := cmplx.Exp(complex(0, p.AngleOrDefault()/2))
		s.pairs(q, func(a, b complex128) (complex128, complex128) {
			return cmplx.Conj(phase) * a, phase * b
		})
	case circuit.CX:
		control, target := 1<<q, 1<<(q+1)
		for i := range s.Amplitudes {
			if i&control != 0 && i&target == 0 {
				j := i | target
				s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
			}
		}
	case circuit.CZ:
		both := 1<<q | 1<<(q+1)
		for i := range s.Amplitudes {
			if i&both == both {
				s.Amplitudes[i] *= -1
			}
		}
	case circuit.SWAP:
		lo, hi := 1<<q, 1<<(q+1)
		for i := range s.Amplitudes {
			if i&lo != 0 && i&hi == 0 {
				j := (i &^ lo) | hi
				s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
			}
		}
	case circuit.MEASURE:
	}
}

// pairs applies a 2x2 operator to every (|..0..>, |..1..>) amplitude pair of
// qubit q.
func (s *State) pairs(q int, op func(a, b complex128) (complex128, complex128)) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = op(s.Amplitudes[i], s.Amplitudes[j])
		}
	}
}

func (s *State) phase(q int, factor complex128) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *State) Probabilities() core.Probabilities {
	p := make(core.Probabilities, len(s.Amplitudes))
	for i, a := range s.Amplitudes {
		p[bitstring(i, s.NumQubits)] = real(a)*real(a) + imag(a)*imag(a)
	}
	p.Normalize()
	return p
}

// Bloch returns the Bloch vector of the reduced state of qubit q.
func (s *State) Bloch(q int) core.BlochVector {
	bit := 1 << q
	var rho01 complex128
	var p0, p1 float64
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p1 += real(a)*real(a) + imag(a)*imag(a)
			continue
		}
		p0 += real(a)*real(a) + imag(a)*imag(a)
		rho01 += a * cmplx.Conj(s.Amplitudes[i|bit])
	}
	return core.BlochVector{
		X: clampUnit(2 * real(rho01)),
		Y: clampUnit(-2 * imag(rho01)),
		Z: clampUnit(p0 - p1),
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// Statevector evolves |0...0> through the placements in execution order.
type Statevector struct {
	Delay time.Duration
}

func (s *Statevector) Setup(_ *core.Conf) error {
	s.Delay = delayFromSetting()
	return nil
}

func (s *Statevector) Name() string {
	return StatevectorName
}

func (s *Statevector) Simulate(ctx context.Context, c *circuit.Circuit) (*core.SimulationResult, error) {
	if err := checkQubits(c); err != nil {
		return nil, err
	}
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	st := NewState(c.QubitCount)
	for _, p := range c.Sorted() {
		if !p.Fits(c.QubitCount) {
			zap.L().Debug(fmt.Sprintf("[Statevector] skipped %s", p))
			continue
		}
		st.Apply(p)
	}
	r := &core.SimulationResult{
		Probabilities: st.Probabilities(),
		BlochVectors:  make([]core.BlochVector, c.QubitCount),
	}
	for q := range r.BlochVectors {
		r.BlochVectors[q] = st.Bloch(q)
	}
	return r, nil
}

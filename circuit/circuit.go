package circuit

import (
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"
	"github.com/qcanvas-team/qcanvas-engine/common"
)

const (
	Depth         = 8
	MinQubits     = 1
	MaxQubits     = 6
	DefaultQubits = 3
)

// Circuit is the canonical gate-placement grid.
type Circuit struct {
	QubitCount int         `json:"qubitCount"`
	Placements []Placement `json:"gates"`
}

func New() *Circuit {
	return &Circuit{
		QubitCount: DefaultQubits,
		Placements: []Placement{},
	}
}

// NewWithPlacements builds a circuit from already positioned placements,
// applying the same replace-on-occupied rule as Place.
func NewWithPlacements(qubitCount int, placements []Placement) (*Circuit, error) {
	if qubitCount < MinQubits || qubitCount > MaxQubits {
		return nil, fmt.Errorf("%w: %d qubits requested, allowed range is [%d,%d]",
			common.ErrQubitBounds, qubitCount, MinQubits, MaxQubits)
	}
	c := &Circuit{QubitCount: qubitCount, Placements: []Placement{}}
	for _, p := range placements {
		if err := c.validate(p); err != nil {
			return nil, err
		}
		c.put(normalize(p))
	}
	return c, nil
}

func (c *Circuit) validate(p Placement) error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown gate kind %d", common.ErrInvalidCoordinate, int(p.Kind))
	}
	if p.Column < 0 || p.Column >= Depth {
		return fmt.Errorf("%w: column %d is outside [0,%d)", common.ErrInvalidCoordinate, p.Column, Depth)
	}
	if !p.Fits(c.QubitCount) {
		return fmt.Errorf("%w: %s does not fit in %d qubits", common.ErrInvalidCoordinate, p, c.QubitCount)
	}
	return nil
}

// normalize drops angles from non-parametric kinds.
func normalize(p Placement) Placement {
	if !p.Kind.IsParametric() {
		p.Angle = nil
	} else if p.Angle != nil {
		p.Angle = Angle(*p.Angle)
	}
	return p
}

func (c *Circuit) index(qubit, column int) int {
	for i, p := range c.Placements {
		if p.Qubit == qubit && p.Column == column {
			return i
		}
	}
	return -1
}

// put inserts p, replacing any occupant of the same cell.
func (c *Circuit) put(p Placement) {
	if i := c.index(p.Qubit, p.Column); i >= 0 {
		c.Placements[i] = p
		return
	}
	c.Placements = append(c.Placements, p)
}

func (c *Circuit) At(qubit, column int) (Placement, bool) {
	if i := c.index(qubit, column); i >= 0 {
		return c.Placements[i], true
	}
	return Placement{}, false
}

func (c *Circuit) Len() int {
	return len(c.Placements)
}

func (c *Circuit) IsEmpty() bool {
	return len(c.Placements) == 0
}

// Sorted returns the placements in ascending (column, qubit) order, the
// canonical execution order.
func (c *Circuit) Sorted() []Placement {
	sorted := make([]Placement, len(c.Placements))
	copy(sorted, c.Placements)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Column != sorted[j].Column {
			return sorted[i].Column < sorted[j].Column
		}
		return sorted[i].Qubit < sorted[j].Qubit
	})
	return sorted
}

// UsedDepth is the index of the last occupied column plus one.
func (c *Circuit) UsedDepth() int {
	d := 0
	for _, p := range c.Placements {
		if p.Column+1 > d {
			d = p.Column + 1
		}
	}
	return d
}

// IsEntangling reports whether any two-qubit gate is placed.
func (c *Circuit) IsEntangling() bool {
	for _, p := range c.Placements {
		if p.Kind.Arity() == 2 {
			return true
		}
	}
	return false
}

func (c *Circuit) Clone() *Circuit {
	cloned := deepcopy.Copy(c).(*Circuit)
	if cloned.Placements == nil {
		cloned.Placements = []Placement{}
	}
	return cloned
}

// withQubitCount returns a copy resized to n qubits, dropping placements whose
// operands no longer exist.
func (c *Circuit) withQubitCount(n int) *Circuit {
	next := &Circuit{QubitCount: n, Placements: []Placement{}}
	for _, p := range c.Clone().Placements {
		if p.Fits(n) {
			next.Placements = append(next.Placements, p)
		}
	}
	return next
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampCell resolves pointer-derived coordinates into a legal cell for kind.
func (c *Circuit) clampCell(kind GateKind, qubit, column int) (int, int, error) {
	maxQubit := c.QubitCount - kind.Arity()
	if maxQubit < 0 {
		return 0, 0, fmt.Errorf("%w: %s needs %d qubits, circuit has %d",
			common.ErrInvalidCoordinate, kind, kind.Arity(), c.QubitCount)
	}
	return clamp(qubit, 0, maxQubit), clamp(column, 0, Depth-1), nil
}

// Snapshot is an immutable copy of the state the History Manager keeps.
type Snapshot struct {
	qubitCount int
	placements []Placement
}

func (c *Circuit) Snapshot() Snapshot {
	cloned := c.Clone()
	return Snapshot{
		qubitCount: cloned.QubitCount,
		placements: cloned.Placements,
	}
}

func (s Snapshot) QubitCount() int {
	return s.qubitCount
}

func (s Snapshot) Placements() []Placement {
	return deepcopy.Copy(s.placements).([]Placement)
}

func (s Snapshot) Circuit() *Circuit {
	return &Circuit{
		QubitCount: s.qubitCount,
		Placements: s.Placements(),
	}
}

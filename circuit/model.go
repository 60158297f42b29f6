package circuit

import (
	"fmt"

	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

// Recorder receives the state of the circuit right before each mutation.
type Recorder interface {
	Record(Snapshot)
}

type ChangeKind int

const (
	Placed ChangeKind = iota
	Removed
	Moved
	Resized
	Cleared
	AngleChanged
	Replaced
	Restored
)

func (c ChangeKind) String() string {
	switch c {
	case Placed:
		return "placed"
	case Removed:
		return "removed"
	case Moved:
		return "moved"
	case Resized:
		return "resized"
	case Cleared:
		return "cleared"
	case AngleChanged:
		return "angle_changed"
	case Replaced:
		return "replaced"
	case Restored:
		return "restored"
	default:
		return "unknown"
	}
}

// Listener is notified after a change is applied. Listeners must not mutate
// the model; code regeneration and simulation are pulled on demand.
type Listener func(ChangeKind, *Circuit)

// Model owns the live circuit. Every mutator computes the next state on a
// copy, records the current state, then swaps the copy in.
type Model struct {
	circuit   *Circuit
	recorder  Recorder
	listeners []Listener
}

func NewModel(recorder Recorder) *Model {
	return &Model{
		circuit:  New(),
		recorder: recorder,
	}
}

func (m *Model) OnChange(l Listener) {
	m.listeners = append(m.listeners, l)
}

// Circuit returns a copy of the live circuit.
func (m *Model) Circuit() *Circuit {
	return m.circuit.Clone()
}

func (m *Model) QubitCount() int {
	return m.circuit.QubitCount
}

func (m *Model) Snapshot() Snapshot {
	return m.circuit.Snapshot()
}

func (m *Model) commit(change ChangeKind, next *Circuit) {
	if m.recorder != nil {
		m.recorder.Record(m.circuit.Snapshot())
	}
	m.circuit = next
	zap.L().Debug(fmt.Sprintf("circuit %s/qubits:%d/gates:%d", change, next.QubitCount, next.Len()))
	m.notify(change)
}

func (m *Model) notify(change ChangeKind) {
	for _, l := range m.listeners {
		l(change, m.circuit.Clone())
	}
}

// Place puts a gate at the cell, replacing any occupant. Coordinates are
// clamped into the grid; only a kind that cannot fit at all is rejected.
func (m *Model) Place(kind GateKind, qubit, column int, angle *float64) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown gate kind %d", common.ErrInvalidCoordinate, int(kind))
	}
	q, col, err := m.circuit.clampCell(kind, qubit, column)
	if err != nil {
		return err
	}
	if q != qubit || col != column {
		zap.L().Debug(fmt.Sprintf("clamped %s from (%d,%d) to (%d,%d)", kind, qubit, column, q, col))
	}
	next := m.circuit.Clone()
	next.put(normalize(Placement{Kind: kind, Qubit: q, Column: col, Angle: angle}))
	m.commit(Placed, next)
	return nil
}

func (m *Model) Remove(qubit, column int) error {
	i := m.circuit.index(qubit, column)
	if i < 0 {
		return fmt.Errorf("%w: (%d,%d)", common.ErrEmptyCell, qubit, column)
	}
	next := m.circuit.Clone()
	next.Placements = append(next.Placements[:i], next.Placements[i+1:]...)
	m.commit(Removed, next)
	return nil
}

// Move relocates the gate at the source cell. The destination is clamped like
// Place and an occupant there is replaced.
func (m *Model) Move(fromQubit, fromColumn, toQubit, toColumn int) error {
	i := m.circuit.index(fromQubit, fromColumn)
	if i < 0 {
		return fmt.Errorf("%w: (%d,%d)", common.ErrEmptyCell, fromQubit, fromColumn)
	}
	moving := m.circuit.Placements[i]
	q, col, err := m.circuit.clampCell(moving.Kind, toQubit, toColumn)
	if err != nil {
		return err
	}
	next := m.circuit.Clone()
	next.Placements = append(next.Placements[:i], next.Placements[i+1:]...)
	moving.Qubit, moving.Column = q, col
	next.put(normalize(moving))
	m.commit(Moved, next)
	return nil
}

// SetQubitCount clamps n into [MinQubits, MaxQubits]. A request that clamps to
// the current count is reported with ErrQubitBounds and changes nothing.
func (m *Model) SetQubitCount(n int) error {
	target := clamp(n, MinQubits, MaxQubits)
	if target == m.circuit.QubitCount {
		if target != n {
			return fmt.Errorf("%w: %d qubits requested, allowed range is [%d,%d]",
				common.ErrQubitBounds, n, MinQubits, MaxQubits)
		}
		return nil
	}
	m.commit(Resized, m.circuit.withQubitCount(target))
	return nil
}

func (m *Model) AddQubit() error {
	return m.SetQubitCount(m.circuit.QubitCount + 1)
}

func (m *Model) RemoveQubit() error {
	return m.SetQubitCount(m.circuit.QubitCount - 1)
}

func (m *Model) Clear() error {
	if m.circuit.IsEmpty() {
		return nil
	}
	m.commit(Cleared, &Circuit{QubitCount: m.circuit.QubitCount, Placements: []Placement{}})
	return nil
}

func (m *Model) SetAngle(qubit, column int, angle float64) error {
	i := m.circuit.index(qubit, column)
	if i < 0 {
		return fmt.Errorf("%w: (%d,%d)", common.ErrEmptyCell, qubit, column)
	}
	if !m.circuit.Placements[i].Kind.IsParametric() {
		return fmt.Errorf("%w: %s takes no angle", common.ErrInvalidCoordinate, m.circuit.Placements[i].Kind)
	}
	next := m.circuit.Clone()
	next.Placements[i].Angle = Angle(angle)
	m.commit(AngleChanged, next)
	return nil
}

// Replace swaps in a whole new circuit as a single undoable step.
func (m *Model) Replace(c *Circuit) error {
	next, err := NewWithPlacements(c.QubitCount, c.Placements)
	if err != nil {
		return err
	}
	m.commit(Replaced, next)
	return nil
}

// Restore applies a snapshot without recording it. Used by undo and redo.
func (m *Model) Restore(s Snapshot) {
	m.circuit = s.Circuit()
	m.notify(Restored)
}

// Package history keeps bounded undo and redo stacks of circuit snapshots.
package history

import (
	"fmt"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

const DefaultLimit = 50

type Manager struct {
	limit int
	undo  []circuit.Snapshot
	redo  []circuit.Snapshot
}

func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{
		limit: limit,
		undo:  make([]circuit.Snapshot, 0, limit),
		redo:  make([]circuit.Snapshot, 0, limit),
	}
}

// Record pushes the state taken before a mutation and invalidates every redo.
func (m *Manager) Record(s circuit.Snapshot) {
	m.push(s)
	m.redo = m.redo[:0]
}

func (m *Manager) push(s circuit.Snapshot) {
	m.undo = append(m.undo, s)
	if over := len(m.undo) - m.limit; over > 0 {
		zap.L().Debug(fmt.Sprintf("history is full. dropping %d oldest entries", over))
		m.undo = append(m.undo[:0], m.undo[over:]...)
	}
}

// Undo returns the state to restore and keeps current for Redo.
func (m *Manager) Undo(current circuit.Snapshot) (circuit.Snapshot, error) {
	if len(m.undo) == 0 {
		return circuit.Snapshot{}, common.ErrNothingToUndo
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current)
	return prev, nil
}

// Redo returns the state to restore. The pre-redo state goes back onto the
// undo stack without touching the remaining redo entries; the next fresh
// mutation clears them through Record.
func (m *Manager) Redo(current circuit.Snapshot) (circuit.Snapshot, error) {
	if len(m.redo) == 0 {
		return circuit.Snapshot{}, common.ErrNothingToRedo
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.push(current)
	return next, nil
}

func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

func (m *Manager) UndoDepth() int {
	return len(m.undo)
}

func (m *Manager) RedoDepth() int {
	return len(m.redo)
}

func (m *Manager) Limit() int {
	return m.limit
}

func (m *Manager) Reset() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

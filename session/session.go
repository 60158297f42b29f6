// Package session owns one editing session: the live circuit, its history,
// the selected export target and source language, and the collaborators used
// to simulate and persist it.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/codegen"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/history"
	"github.com/qcanvas-team/qcanvas-engine/importer"
	"go.uber.org/zap"
)

type Session struct {
	model   *circuit.Model
	history *history.Manager

	sim   core.Simulator
	store core.CircuitStore

	// mu guards the model, the history and the selections.
	mu             sync.Mutex
	target         codegen.Target
	sourceLanguage importer.Language
	currentUser    string

	// busy is set while an import, load or save is in flight.
	busy atomic.Bool

	statusMu sync.RWMutex
	status   Notice

	counters core.Counters
}

// New builds a session from the global setting. store may be nil, in which
// case persistence operations fail.
func New(sim core.Simulator, store core.CircuitStore, currentUser string) *Session {
	setting := core.GetGlobalSetting()
	h := history.NewManager(setting.History.Limit)
	s := &Session{
		model:          circuit.NewModel(h),
		history:        h,
		sim:            sim,
		store:          store,
		target:         codegen.DefaultTarget,
		sourceLanguage: importer.DefaultLanguage,
		currentUser:    currentUser,
		status:         Notice{Level: Info, Message: "ready"},
	}
	if t, err := codegen.ParseTarget(setting.Export.DefaultTarget); err == nil {
		s.target = t
	} else {
		zap.L().Warn(fmt.Sprintf("ignored default target/reason:%s", err))
	}
	if l, err := importer.ParseLanguage(setting.Import.DefaultLanguage); err == nil {
		s.sourceLanguage = l
	} else {
		zap.L().Warn(fmt.Sprintf("ignored default language/reason:%s", err))
	}
	return s
}

func (s *Session) setStatus(n Notice) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status = n
}

func (s *Session) succeed(format string, args ...interface{}) {
	s.setStatus(Notice{Level: Success, Message: fmt.Sprintf(format, args...)})
}

func (s *Session) fail(err error) error {
	n := NoticeFor(err)
	s.setStatus(n)
	zap.L().Debug(fmt.Sprintf("[Session] %s", n))
	return err
}

// Status returns the last notice.
func (s *Session) Status() Notice {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func (s *Session) Stats() core.Stats {
	return s.counters.Stats()
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

// acquire marks the session busy. The returned func clears the mark.
func (s *Session) acquire() (func(), error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, common.ErrBusy
	}
	return func() { s.busy.Store(false) }, nil
}

// Circuit returns a copy of the live circuit.
func (s *Session) Circuit() *circuit.Circuit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Circuit()
}

// OnChange registers a listener on the model. Listeners run with the session
// locked and must not call back into it.
func (s *Session) OnChange(l circuit.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model.OnChange(l)
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *Session) edit(apply func(*circuit.Model) error, format string, args ...interface{}) error {
	if s.busy.Load() {
		return s.fail(common.ErrBusy)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := apply(s.model); err != nil {
		return s.fail(err)
	}
	s.counters.Edits.Add(1)
	s.succeed(format, args...)
	return nil
}

func (s *Session) Place(kind circuit.GateKind, qubit, column int, angle *float64) error {
	return s.edit(func(m *circuit.Model) error {
		return m.Place(kind, qubit, column, angle)
	}, "placed %s", kind)
}

func (s *Session) Remove(qubit, column int) error {
	return s.edit(func(m *circuit.Model) error {
		return m.Remove(qubit, column)
	}, "removed gate at (%d,%d)", qubit, column)
}

func (s *Session) Move(fromQubit, fromColumn, toQubit, toColumn int) error {
	return s.edit(func(m *circuit.Model) error {
		return m.Move(fromQubit, fromColumn, toQubit, toColumn)
	}, "moved gate from (%d,%d)", fromQubit, fromColumn)
}

func (s *Session) SetQubitCount(n int) error {
	return s.edit(func(m *circuit.Model) error {
		return m.SetQubitCount(n)
	}, "qubit count set to %d", n)
}

func (s *Session) AddQubit() error {
	return s.edit(func(m *circuit.Model) error {
		return m.AddQubit()
	}, "added a qubit")
}

func (s *Session) RemoveQubit() error {
	return s.edit(func(m *circuit.Model) error {
		return m.RemoveQubit()
	}, "removed a qubit")
}

func (s *Session) Clear() error {
	return s.edit(func(m *circuit.Model) error {
		return m.Clear()
	}, "cleared the circuit")
}

func (s *Session) SetAngle(qubit, column int, angle float64) error {
	return s.edit(func(m *circuit.Model) error {
		return m.SetAngle(qubit, column, angle)
	}, "angle at (%d,%d) set to %g", qubit, column, angle)
}

func (s *Session) Undo() error {
	return s.edit(func(m *circuit.Model) error {
		prev, err := s.history.Undo(m.Snapshot())
		if err != nil {
			return err
		}
		m.Restore(prev)
		return nil
	}, "undone")
}

func (s *Session) Redo() error {
	return s.edit(func(m *circuit.Model) error {
		next, err := s.history.Redo(m.Snapshot())
		if err != nil {
			return err
		}
		m.Restore(next)
		return nil
	}, "redone")
}

func (s *Session) Target() codegen.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Session) SetTarget(name string) error {
	t, err := codegen.ParseTarget(name)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.target = t
	s.mu.Unlock()
	s.succeed("target set to %s", t)
	return nil
}

func (s *Session) SourceLanguage() importer.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceLanguage
}

func (s *Session) SetSourceLanguage(name string) error {
	l, err := importer.ParseLanguage(name)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.sourceLanguage = l
	s.mu.Unlock()
	s.succeed("source language set to %s", l)
	return nil
}

func (s *Session) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

func (s *Session) SetCurrentUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = id
}

// Code renders the live circuit for t.
func (s *Session) Code(t codegen.Target) (string, error) {
	c := s.Circuit()
	code, err := codegen.Generate(c, t)
	if err != nil {
		return "", s.fail(err)
	}
	s.counters.Exports.Add(1)
	return code, nil
}

// CurrentCode renders the live circuit for the selected target.
func (s *Session) CurrentCode() (string, error) {
	return s.Code(s.Target())
}

// Import replaces the circuit with what source describes, as one undoable
// step. An empty lang uses the selected source language. On failure the
// circuit is left as it was.
func (s *Session) Import(source string, lang importer.Language) (*importer.Result, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, s.fail(err)
	}
	defer release()
	if lang == "" {
		lang = s.SourceLanguage()
	}
	res, err := importer.Import(source, lang)
	if err != nil {
		return nil, s.fail(err)
	}
	c, err := res.Circuit()
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	err = s.model.Replace(c)
	s.mu.Unlock()
	if err != nil {
		return nil, s.fail(err)
	}
	s.counters.Imports.Add(1)
	msg := fmt.Sprintf("imported %d gates on %d qubits from %s; columns follow line order",
		len(res.Placements), res.QubitCount, lang)
	if res.Skipped > 0 {
		msg += fmt.Sprintf("; %d unrecognised lines skipped", res.Skipped)
	}
	if res.DefaultedAngles > 0 {
		msg += fmt.Sprintf("; %d unreadable angles set to the default", res.DefaultedAngles)
	}
	s.setStatus(Notice{Level: Info, Message: msg})
	return res, nil
}

// Simulate runs the configured simulator on a copy of the live circuit.
func (s *Session) Simulate(ctx context.Context) (*core.SimulationResult, error) {
	if s.sim == nil {
		return nil, s.fail(errors.New("no simulator is configured"))
	}
	c := s.Circuit()
	r, err := s.sim.Simulate(ctx, c)
	if err != nil {
		return nil, s.fail(errors.Wrapf(err, "simulate with %s", s.sim.Name()))
	}
	s.counters.Simulations.Add(1)
	s.succeed("simulated %d qubits with %s", c.QubitCount, s.sim.Name())
	return r, nil
}

func (s *Session) checkStore() error {
	if s.store == nil {
		return errors.New("no circuit store is configured")
	}
	return nil
}

// Save stores the live circuit under name, owned by the current user.
func (s *Session) Save(ctx context.Context, name string) (*core.CircuitDocument, error) {
	if err := s.checkStore(); err != nil {
		return nil, s.fail(err)
	}
	release, err := s.acquire()
	if err != nil {
		return nil, s.fail(err)
	}
	defer release()
	s.mu.Lock()
	doc := core.NewCircuitDocument(name, string(s.target), s.currentUser, s.model.Circuit())
	s.mu.Unlock()
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, s.fail(err)
	}
	s.counters.Saves.Add(1)
	s.succeed("saved %q as %s", name, doc.ID)
	return doc, nil
}

// Load replaces the live circuit with a stored one as one undoable step. A
// stored language that names a target also selects it.
func (s *Session) Load(ctx context.Context, id string) (*core.CircuitDocument, error) {
	if err := s.checkStore(); err != nil {
		return nil, s.fail(err)
	}
	release, err := s.acquire()
	if err != nil {
		return nil, s.fail(err)
	}
	defer release()
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}
	c, err := doc.ToCircuit()
	if err != nil {
		return nil, s.fail(err)
	}
	s.mu.Lock()
	err = s.model.Replace(c)
	if err == nil {
		if t, perr := codegen.ParseTarget(doc.Language); perr == nil {
			s.target = t
		}
	}
	s.mu.Unlock()
	if err != nil {
		return nil, s.fail(err)
	}
	s.counters.Loads.Add(1)
	s.succeed("loaded %q", doc.Name)
	return doc, nil
}

// List returns the circuits of the current user, newest first.
func (s *Session) List(ctx context.Context) ([]*core.CircuitDocument, error) {
	if err := s.checkStore(); err != nil {
		return nil, s.fail(err)
	}
	docs, err := s.store.List(ctx, s.CurrentUser())
	if err != nil {
		return nil, s.fail(err)
	}
	s.succeed("%d saved circuits", len(docs))
	return docs, nil
}

func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.checkStore(); err != nil {
		return s.fail(err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(err)
	}
	s.succeed("deleted %s", id)
	return nil
}

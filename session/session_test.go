//go:build unit
// +build unit

package session

import (
	"context"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/golang/mock/gomock"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/codegen"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, store core.CircuitStore) (*Session, *core.FixedSimulator) {
	t.Helper()
	core.ResetSetting()
	t.Cleanup(core.ResetSetting)
	sim := &core.FixedSimulator{Result: core.UniformResult(circuit.DefaultQubits)}
	return New(sim, store, "alice"), sim
}

func TestNewUsesSetting(t *testing.T) {
	core.ResetSetting()
	defer core.ResetSetting()
	core.GetGlobalSetting().Export.DefaultTarget = "Quil"
	core.GetGlobalSetting().Import.DefaultLanguage = "cirq"
	core.GetGlobalSetting().History.Limit = 2

	s := New(nil, nil, "bob")
	assert.Equal(t, codegen.Quil, s.Target())
	assert.Equal(t, importer.Cirq, s.SourceLanguage())
	assert.Equal(t, "bob", s.CurrentUser())
	for i := 0; i < 3; i++ {
		require.Nil(t, s.Place(circuit.H, 0, i, nil))
	}
	assert.Nil(t, s.Undo())
	assert.Nil(t, s.Undo())
	assert.ErrorIs(t, s.Undo(), common.ErrNothingToUndo)
}

func TestEditsAndStatus(t *testing.T) {
	s, _ := newSession(t, nil)
	assert.Equal(t, Info, s.Status().Level)

	require.Nil(t, s.Place(circuit.RX, 1, 2, circuit.Angle(0.5)))
	assert.Equal(t, Success, s.Status().Level)
	require.Nil(t, s.SetAngle(1, 2, 1.25))
	got, ok := s.Circuit().At(1, 2)
	require.True(t, ok)
	assert.Equal(t, 1.25, got.AngleOrDefault())

	err := s.Remove(0, 0)
	assert.ErrorIs(t, err, common.ErrEmptyCell)
	assert.Equal(t, Warning, s.Status().Level)

	require.Nil(t, s.Move(1, 2, 0, 4))
	_, ok = s.Circuit().At(0, 4)
	assert.True(t, ok)

	require.Nil(t, s.AddQubit())
	assert.Equal(t, 4, s.Circuit().QubitCount)
	require.Nil(t, s.RemoveQubit())
	require.Nil(t, s.Clear())
	assert.True(t, s.Circuit().IsEmpty())
	assert.Equal(t, int64(6), s.Stats().Edits)
}

func TestQubitBoundsAreNotices(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.SetQubitCount(circuit.MaxQubits))
	assert.ErrorIs(t, s.AddQubit(), common.ErrQubitBounds)
	assert.Equal(t, Warning, s.Status().Level)
	require.Nil(t, s.SetQubitCount(circuit.MinQubits))
	assert.ErrorIs(t, s.RemoveQubit(), common.ErrQubitBounds)
}

func TestShrinkingDropsTwoQubitGates(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.SetQubitCount(2))
	require.Nil(t, s.Place(circuit.CX, 0, 0, nil))
	require.Nil(t, s.SetQubitCount(1))
	assert.True(t, s.Circuit().IsEmpty())
	require.Nil(t, s.Undo())
	assert.Equal(t, 1, s.Circuit().Len())
}

func TestUndoRedoRestoresExactState(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.Place(circuit.H, 0, 0, nil))
	afterH := s.Circuit()
	require.Nil(t, s.Place(circuit.CX, 0, 1, nil))
	afterCX := s.Circuit()

	require.Nil(t, s.Undo())
	assert.Equal(t, afterH, s.Circuit())
	assert.True(t, s.CanRedo())
	require.Nil(t, s.Redo())
	assert.Equal(t, afterCX, s.Circuit())
	assert.ErrorIs(t, s.Redo(), common.ErrNothingToRedo)
	assert.Equal(t, Warning, s.Status().Level)
}

func TestHistoryKeepsFiftyEntries(t *testing.T) {
	s, _ := newSession(t, nil)
	for i := 0; i < 51; i++ {
		require.Nil(t, s.Place(circuit.GateKinds()[i%4], i%3, i%circuit.Depth, nil))
	}
	undone := 0
	for s.CanUndo() {
		require.Nil(t, s.Undo())
		undone++
	}
	assert.Equal(t, 50, undone)
	assert.Equal(t, 1, s.Circuit().Len(), "the oldest entry was evicted")
}

func TestSelections(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.SetTarget("braket"))
	assert.Equal(t, codegen.Braket, s.Target())
	assert.ErrorIs(t, s.SetTarget("fortran"), common.ErrUnsupportedTarget)
	assert.Equal(t, Error, s.Status().Level)
	assert.Equal(t, codegen.Braket, s.Target())

	require.Nil(t, s.SetSourceLanguage("Quil"))
	assert.Equal(t, importer.Quil, s.SourceLanguage())
	assert.ErrorIs(t, s.SetSourceLanguage("qsharp"), common.ErrUnsupportedLanguage)

	s.SetCurrentUser("carol")
	assert.Equal(t, "carol", s.CurrentUser())
}

func TestCode(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.Place(circuit.H, 0, 0, nil))
	code, err := s.CurrentCode()
	require.Nil(t, err)
	assert.Contains(t, code, "qc.h(qr[0])")

	code, err = s.Code(codegen.QASM)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(code, "OPENQASM 2.0;"))
	_, err = s.Code("basic")
	assert.ErrorIs(t, err, common.ErrUnsupportedTarget)
	assert.Equal(t, int64(2), s.Stats().Exports)
}

func TestImport(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.Place(circuit.Z, 2, 7, nil))
	before := s.Circuit()

	src := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		h q[0];
		cx q[0],q[1];
	`)
	res, err := s.Import(src, "")
	require.Nil(t, err)
	assert.Equal(t, 2, res.QubitCount)
	assert.Equal(t, Info, s.Status().Level)
	assert.Contains(t, s.Status().Message, "columns follow line order")

	c := s.Circuit()
	assert.Equal(t, 2, c.QubitCount)
	h, ok := c.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, circuit.H, h.Kind)
	cx, ok := c.At(0, 1)
	require.True(t, ok)
	assert.Equal(t, circuit.CX, cx.Kind)

	require.Nil(t, s.Undo())
	assert.Equal(t, before, s.Circuit(), "an import is one undoable step")
}

func TestImportReportsDefaultedAngles(t *testing.T) {
	s, _ := newSession(t, nil)
	res, err := s.Import("qc.rx(theta, qr[0])\nqc.rz((np.pi/4), qr[0])", importer.Qiskit)
	require.Nil(t, err)
	assert.Equal(t, 1, res.DefaultedAngles)
	assert.Contains(t, s.Status().Message, "1 unreadable angles set to the default")
}

func TestImportBeyondGridDepth(t *testing.T) {
	s, _ := newSession(t, nil)
	var src string
	for i := 0; i < 9; i++ {
		src += "H 0\n"
	}
	_, err := s.Import(src, importer.Quil)
	assert.ErrorIs(t, err, common.ErrInvalidCoordinate)
	assert.Equal(t, Warning, s.Status().Level)
	assert.Contains(t, s.Status().Message, "8 sequential steps")
}

func TestFailedImportLeavesCircuit(t *testing.T) {
	s, _ := newSession(t, nil)
	require.Nil(t, s.Place(circuit.X, 0, 0, nil))
	before := s.Circuit()

	_, err := s.Import("// only a comment\n", importer.QASM)
	assert.ErrorIs(t, err, common.ErrNoGatesFound)
	assert.Equal(t, Warning, s.Status().Level)
	_, err = s.Import("h q[0];", "xacc")
	assert.ErrorIs(t, err, common.ErrUnsupportedLanguage)
	assert.Equal(t, before, s.Circuit())
	assert.False(t, s.Busy())
}

func TestSimulate(t *testing.T) {
	s, sim := newSession(t, nil)
	r, err := s.Simulate(context.Background())
	require.Nil(t, err)
	assert.Nil(t, r.Validate(circuit.DefaultQubits))
	assert.Equal(t, 1, sim.Calls)
	assert.Equal(t, int64(1), s.Stats().Simulations)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Simulate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Info, s.Status().Level)
}

func TestSaveAndLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := core.NewMockCircuitStore(ctrl)
	s, _ := newSession(t, store)
	ctx := context.Background()

	require.Nil(t, s.SetTarget("cirq"))
	require.Nil(t, s.Place(circuit.H, 0, 0, nil))

	var saved *core.CircuitDocument
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc *core.CircuitDocument) error {
			saved = doc.Clone()
			return nil
		})
	doc, err := s.Save(ctx, "bell")
	require.Nil(t, err)
	assert.Equal(t, "alice", saved.OwnerID)
	assert.Equal(t, "cirq", saved.Language)
	assert.Equal(t, doc.ID, saved.ID)

	require.Nil(t, s.Clear())
	require.Nil(t, s.SetTarget("qasm"))
	store.EXPECT().Get(gomock.Any(), saved.ID).Return(saved, nil)
	_, err = s.Load(ctx, saved.ID)
	require.Nil(t, err)
	assert.Equal(t, 1, s.Circuit().Len())
	assert.Equal(t, codegen.Cirq, s.Target())

	store.EXPECT().Get(gomock.Any(), "missing").Return(nil, common.ErrNotFound)
	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 1, s.Circuit().Len())
	assert.Equal(t, core.Stats{Edits: 2, Saves: 1, Loads: 1}, s.Stats())
}

func TestListAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := core.NewMockCircuitStore(ctrl)
	s, _ := newSession(t, store)
	ctx := context.Background()

	docs := []*core.CircuitDocument{core.NewCircuitDocument("a", "qasm", "alice", circuit.New())}
	store.EXPECT().List(gomock.Any(), "alice").Return(docs, nil)
	got, err := s.List(ctx)
	require.Nil(t, err)
	assert.Equal(t, docs, got)

	store.EXPECT().Delete(gomock.Any(), "x").Return(common.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "x"), common.ErrNotFound)
	assert.Equal(t, Error, s.Status().Level)
}

func TestWithoutStore(t *testing.T) {
	s, _ := newSession(t, nil)
	_, err := s.Save(context.Background(), "x")
	assert.NotNil(t, err)
	_, err = s.List(context.Background())
	assert.NotNil(t, err)
}

func TestEditsAreRejectedWhileBusy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := core.NewMockCircuitStore(ctrl)
	s, _ := newSession(t, store)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	store.EXPECT().Get(gomock.Any(), "slow").DoAndReturn(
		func(context.Context, string) (*core.CircuitDocument, error) {
			close(entered)
			<-proceed
			return nil, common.ErrNotFound
		})

	done := make(chan error)
	go func() {
		_, err := s.Load(context.Background(), "slow")
		done <- err
	}()
	<-entered
	assert.True(t, s.Busy())
	assert.ErrorIs(t, s.Place(circuit.H, 0, 0, nil), common.ErrBusy)
	_, err := s.Import("h q[0];", importer.QASM)
	assert.ErrorIs(t, err, common.ErrBusy)
	close(proceed)
	assert.ErrorIs(t, <-done, common.ErrNotFound)

	assert.False(t, s.Busy())
	assert.Nil(t, s.Place(circuit.H, 0, 0, nil))
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Level
	}{
		{name: "nil", err: nil, want: Success},
		{name: "recoverable", err: common.ErrInvalidCoordinate, want: Warning},
		{name: "cancelled", err: context.Canceled, want: Info},
		{name: "unsupported target", err: common.ErrUnsupportedTarget, want: Error},
		{name: "other", err: assert.AnError, want: Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoticeFor(tt.err).Level)
		})
	}
}

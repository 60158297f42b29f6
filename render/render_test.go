//go:build unit
// +build unit

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/session"
	"github.com/stretchr/testify/assert"
)

func TestPadCenter(t *testing.T) {
	assert.Equal(t, " H ", padCenter("H", 3))
	assert.Equal(t, " RX  ", padCenter("RX", 5))
	assert.Equal(t, "SWA", padCenter("SWAP", 3))
}

func TestCell(t *testing.T) {
	c := &circuit.Circuit{QubitCount: 3, Placements: []circuit.Placement{
		{Kind: circuit.H, Qubit: 0, Column: 0},
		{Kind: circuit.CX, Qubit: 0, Column: 1},
		{Kind: circuit.SWAP, Qubit: 1, Column: 2},
		{Kind: circuit.MEASURE, Qubit: 2, Column: 3},
	}}
	tests := []struct {
		name   string
		qubit  int
		column int
		want   string
	}{
		{name: "single qubit gate", qubit: 0, column: 0, want: "H"},
		{name: "control", qubit: 0, column: 1, want: "●"},
		{name: "target", qubit: 1, column: 1, want: "⊕"},
		{name: "swap lower", qubit: 1, column: 2, want: "×"},
		{name: "swap upper", qubit: 2, column: 2, want: "×"},
		{name: "measure", qubit: 2, column: 3, want: "M"},
		{name: "empty", qubit: 2, column: 7, want: "───────"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cell(c, tt.qubit, tt.column)
			assert.Contains(t, got, tt.want)
			assert.Equal(t, cellW, lipgloss.Width(got))
		})
	}
}

func TestGrid(t *testing.T) {
	c := &circuit.Circuit{QubitCount: 2, Placements: []circuit.Placement{
		{Kind: circuit.H, Qubit: 0, Column: 0},
		{Kind: circuit.RZ, Qubit: 1, Column: 4, Angle: circuit.Angle(0.25)},
	}}
	out := Grid(c)
	assert.Contains(t, out, "Circuit: 2 qubits, 2 gates")
	assert.Contains(t, out, "q[0]")
	assert.Contains(t, out, "q[1]")
	assert.NotContains(t, out, "q[2]")
	assert.Contains(t, out, "RZ q[1] col 4: 0.25 rad")
}

func TestGridNotesHiddenTarget(t *testing.T) {
	c := &circuit.Circuit{QubitCount: 2, Placements: []circuit.Placement{
		{Kind: circuit.CX, Qubit: 0, Column: 3},
		{Kind: circuit.H, Qubit: 1, Column: 3},
	}}
	assert.Equal(t, []string{"CX q[0] col 3: target q[1] is hidden by H"}, overlaps(c))
	assert.Contains(t, Grid(c), "target q[1] is hidden by H")

	c.Placements[1].Column = 4
	assert.Empty(t, overlaps(c))
	assert.NotContains(t, Grid(c), "hidden by")
}

func TestResult(t *testing.T) {
	r := &core.SimulationResult{
		Probabilities: core.Probabilities{"1": 0.25, "0": 0.75},
		BlochVectors:  []core.BlochVector{{X: 0.5, Y: 0, Z: -1}},
	}
	out := Result(r)
	assert.Less(t, strings.Index(out, "0.7500"), strings.Index(out, "0.2500"))
	assert.Contains(t, out, "x=+0.500 y=+0.000 z=-1.000")
}

func TestNotice(t *testing.T) {
	for _, l := range []session.Level{session.Success, session.Info, session.Warning, session.Error} {
		out := Notice(session.Notice{Level: l, Message: "done"})
		assert.Contains(t, out, "["+l.String()+"] done")
	}
}

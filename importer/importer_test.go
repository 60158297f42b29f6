//go:build unit
// +build unit

package importer

import (
	"errors"
	"math"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/codegen"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQASMRoundTrip(t *testing.T) {
	c := &circuit.Circuit{
		QubitCount: 2,
		Placements: []circuit.Placement{
			{Kind: circuit.H, Qubit: 0, Column: 0},
			{Kind: circuit.CX, Qubit: 0, Column: 1},
		},
	}
	code, err := codegen.Generate(c, codegen.QASM)
	require.Nil(t, err)

	res, err := Import(code, QASM)
	require.Nil(t, err)
	assert.Equal(t, 2, res.QubitCount)
	assert.Equal(t, []circuit.Placement{
		{Kind: circuit.H, Qubit: 0, Column: 0},
		{Kind: circuit.CX, Qubit: 0, Column: 1},
	}, res.Placements)
}

func TestRoundTripKeepsOperationOrder(t *testing.T) {
	c := &circuit.Circuit{
		QubitCount: 3,
		Placements: []circuit.Placement{
			{Kind: circuit.MEASURE, Qubit: 2, Column: 6},
			{Kind: circuit.SWAP, Qubit: 0, Column: 3},
			{Kind: circuit.H, Qubit: 0, Column: 0},
			{Kind: circuit.RX, Qubit: 1, Column: 0, Angle: circuit.Angle(0.5)},
			{Kind: circuit.CX, Qubit: 1, Column: 1},
			{Kind: circuit.RZ, Qubit: 2, Column: 2},
		},
	}
	for _, lang := range Languages() {
		t.Run(string(lang), func(t *testing.T) {
			code, err := codegen.Generate(c, codegen.Target(lang))
			require.Nil(t, err)

			res, err := Import(code, lang)
			require.Nil(t, err, code)
			assert.Equal(t, 3, res.QubitCount)
			require.Len(t, res.Placements, len(c.Placements), code)
			for i, want := range c.Sorted() {
				got := res.Placements[i]
				assert.Equal(t, i, got.Column)
				assert.Equal(t, want.Kind, got.Kind)
				assert.Equal(t, want.Qubit, got.Qubit)
				assert.Equal(t, want.AngleOrDefault(), got.AngleOrDefault())
			}
		})
	}
}

func TestCommentsOnlyYieldNoGatesFound(t *testing.T) {
	source := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		// nothing to see here
		qreg q[2];
		creg c[2];
		`)
	_, err := Import(source, QASM)
	assert.True(t, errors.Is(err, common.ErrNoGatesFound))
	assert.False(t, errors.Is(err, common.ErrUnsupportedLanguage))
}

func TestUnsupportedLanguage(t *testing.T) {
	for _, lang := range []Language{"qsharp", "braket", "xacc", "basic"} {
		_, err := Import("H 0", lang)
		assert.True(t, errors.Is(err, common.ErrUnsupportedLanguage), lang)
	}
	_, err := ParseLanguage("Q#")
	assert.True(t, errors.Is(err, common.ErrUnsupportedLanguage))

	got, err := ParseLanguage("PennyLane")
	assert.Nil(t, err)
	assert.Equal(t, PennyLane, got)
}

func TestImportAssets(t *testing.T) {
	tests := []struct {
		name  string
		asset string
		lang  Language
	}{
		{name: "qasm", asset: "bell_pair.qasm", lang: QASM},
		{name: "qiskit", asset: "bell_pair_qiskit.py", lang: Qiskit},
		{name: "quil", asset: "bell_pair.quil", lang: Quil},
	}
	want := []circuit.Placement{
		{Kind: circuit.H, Qubit: 0, Column: 0},
		{Kind: circuit.CX, Qubit: 0, Column: 1},
		{Kind: circuit.MEASURE, Qubit: 0, Column: 2},
		{Kind: circuit.MEASURE, Qubit: 1, Column: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := common.GetAsset(tt.asset)
			require.Nil(t, err)
			res, err := Import(source, tt.lang)
			require.Nil(t, err)
			assert.Equal(t, 2, res.QubitCount)
			assert.Equal(t, want, res.Placements)

			c, err := res.Circuit()
			assert.Nil(t, err)
			assert.True(t, c.IsEntangling())
		})
	}
}

func TestImportGrammars(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		source string
		want   []circuit.Placement
		count  int
	}{
		{
			name: "cirq line qubits",
			lang: Cirq,
			source: heredoc.Doc(`
				q0 = cirq.GridQubit(0, 0)
				circuit.append(cirq.X(q0))
				circuit.append(cirq.CZ(q1, q0))
				`),
			want: []circuit.Placement{
				{Kind: circuit.X, Qubit: 0, Column: 0},
				{Kind: circuit.CZ, Qubit: 0, Column: 1},
			},
			count: 2,
		},
		{
			name: "pennylane positional wires",
			lang: PennyLane,
			source: heredoc.Doc(`
				qml.PauliY(3)
				qml.RY(np.pi/4, wires=0)
				`),
			want: []circuit.Placement{
				{Kind: circuit.Y, Qubit: 3, Column: 0},
				{Kind: circuit.RY, Qubit: 0, Column: 1, Angle: circuit.Angle(math.Pi / 4)},
			},
			count: 4,
		},
		{
			name: "qiskit aliases, keyword operands are skipped",
			lang: Qiskit,
			source: heredoc.Doc(`
				qc.cnot(0, 1)
				qc.rz(theta=-pi/2, qubit=1)
				qc.rz(-pi/2, 1)
				`),
			want: []circuit.Placement{
				{Kind: circuit.CX, Qubit: 0, Column: 0},
				{Kind: circuit.RZ, Qubit: 1, Column: 1, Angle: circuit.Angle(-math.Pi / 2)},
			},
			count: 2,
		},
		{
			name: "quil ignores declarations",
			lang: Quil,
			source: heredoc.Doc(`
				DECLARE ro BIT[1]
				RX(2*pi) 0
				MEASURE 0 ro[0]
				`),
			want: []circuit.Placement{
				{Kind: circuit.RX, Qubit: 0, Column: 0, Angle: circuit.Angle(2 * math.Pi)},
				{Kind: circuit.MEASURE, Qubit: 0, Column: 1},
			},
			count: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Import(tt.source, tt.lang)
			require.Nil(t, err)
			assert.Equal(t, tt.want, res.Placements)
			assert.Equal(t, tt.count, res.QubitCount)
		})
	}
}

func TestImportRejectsWhatTheGridCannotHold(t *testing.T) {
	_, err := Import("h q[6];", QASM)
	assert.True(t, errors.Is(err, common.ErrInvalidCoordinate))

	var source string
	for i := 0; i <= circuit.Depth; i++ {
		source += "X 0\n"
	}
	_, err = Import(source, Quil)
	assert.True(t, errors.Is(err, common.ErrInvalidCoordinate))
	assert.Contains(t, err.Error(), "the grid holds only 8 sequential steps")
}

func TestImportParenthesisedAngles(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		source string
	}{
		{
			name: "qiskit",
			lang: Qiskit,
			source: heredoc.Doc(`
				qc.rx((np.pi/4), qr[0])
				qc.rz(-(pi/8), qr[0])
			`),
		},
		{
			name: "qasm",
			lang: QASM,
			source: heredoc.Doc(`
				rx((pi/4)) q[0];
				rz(-(pi/8)) q[0];
			`),
		},
		{
			name: "quil",
			lang: Quil,
			source: heredoc.Doc(`
				RX((pi/4)) 0
				RZ(-(pi/8)) 0
			`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Import(tt.source, tt.lang)
			require.Nil(t, err)
			require.Len(t, res.Placements, 2)
			assert.Equal(t, 0, res.DefaultedAngles)
			assert.InDelta(t, math.Pi/4, res.Placements[0].AngleOrDefault(), 1e-12)
			assert.InDelta(t, -math.Pi/8, res.Placements[1].AngleOrDefault(), 1e-12)
		})
	}
}

func TestImportCountsDefaultedAngles(t *testing.T) {
	res, err := Import("qc.rx(theta, qr[0])\nqc.h(qr[1])", Qiskit)
	require.Nil(t, err)
	assert.Equal(t, 1, res.DefaultedAngles)
	assert.Nil(t, res.Placements[0].Angle)
	assert.Equal(t, circuit.DefaultAngle, res.Placements[0].AngleOrDefault())
}

func TestParseAngle(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "0.25", want: 0.25},
		{in: "pi", want: math.Pi},
		{in: "np.pi/2", want: math.Pi / 2},
		{in: "-math.pi / 4", want: -math.Pi / 4},
		{in: "3*PI()/4", want: 3 * math.Pi / 4},
		{in: "(pi)", want: math.Pi},
		{in: "(np.pi/4)", want: math.Pi / 4},
		{in: "-(pi/8)", want: -math.Pi / 8},
		{in: "pi/(2)", want: math.Pi / 2},
		{in: "(3*pi)/(2*2)", want: 3 * math.Pi / 4},
		{in: "(pi/2", wantErr: true},
		{in: "pi)/2", wantErr: true},
		{in: "theta", wantErr: true},
		{in: "pi/0", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAngle(tt.in)
			if tt.wantErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

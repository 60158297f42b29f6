//go:build unit
// +build unit

package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellPair() *circuit.Circuit {
	return &circuit.Circuit{
		QubitCount: 2,
		Placements: []circuit.Placement{
			{Kind: circuit.CX, Qubit: 0, Column: 1},
			{Kind: circuit.H, Qubit: 0, Column: 0},
		},
	}
}

func TestInstructionTablesAreTotal(t *testing.T) {
	for _, target := range Targets() {
		b, ok := backends[target]
		require.True(t, ok, "no backend for %s", target)
		assert.Equal(t, target, b.target)
		for _, k := range circuit.GateKinds() {
			assert.NotEmpty(t, b.instructions[k], "%s has no instruction for %s", target, k)
		}
		assert.NotEmpty(t, target.Extension())
		assert.NotEmpty(t, target.Description())
	}
}

func TestGenerateQASMBellPair(t *testing.T) {
	code, err := Generate(bellPair(), QASM)
	assert.Nil(t, err)
	expected := heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";

		// Quantum circuit with 2 qubits and 2 gates
		qreg q[2];
		creg c[2];

		h q[0];
		cx q[0],q[1];

		// Execute on a qasm simulator with 1024 shots
		// and report the counts of creg c[2] read from qreg q[2]
		`)
	assert.Equal(t, expected, code)
}

func TestGenerateIsDeterministic(t *testing.T) {
	c := &circuit.Circuit{
		QubitCount: 3,
		Placements: []circuit.Placement{
			{Kind: circuit.RY, Qubit: 2, Column: 4, Angle: circuit.Angle(0.25)},
			{Kind: circuit.SWAP, Qubit: 1, Column: 0},
			{Kind: circuit.T, Qubit: 0, Column: 0},
			{Kind: circuit.MEASURE, Qubit: 2, Column: 7},
		},
	}
	for _, target := range Targets() {
		first, err := Generate(c, target)
		assert.Nil(t, err)
		second, err := Generate(c.Clone(), target)
		assert.Nil(t, err)
		assert.Equal(t, first, second, target)
	}
}

func TestInstructionsOrdering(t *testing.T) {
	c := &circuit.Circuit{
		QubitCount: 3,
		Placements: []circuit.Placement{
			{Kind: circuit.Z, Qubit: 0, Column: 3},
			{Kind: circuit.Y, Qubit: 2, Column: 1},
			{Kind: circuit.X, Qubit: 0, Column: 1},
		},
	}
	lines, err := Instructions(c, Quil)
	assert.Nil(t, err)
	assert.Equal(t, []string{"X 0", "Y 2", "Z 0"}, lines)
}

func TestInstructionsPerTarget(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   []string
	}{
		{name: "qiskit", target: Qiskit, want: []string{"qc.h(qr[0])", "qc.cx(qr[0], qr[1])"}},
		{name: "cirq", target: Cirq, want: []string{
			"circuit.append(cirq.H(qubits[0]))",
			"circuit.append(cirq.CNOT(qubits[0], qubits[1]))",
		}},
		{name: "qsharp", target: QSharp, want: []string{"H(qubits[0]);", "CNOT(qubits[0], qubits[1]);"}},
		{name: "braket", target: Braket, want: []string{"circuit.h(0)", "circuit.cnot(0, 1)"}},
		{name: "quil", target: Quil, want: []string{"H 0", "CNOT 0 1"}},
		{name: "pennylane", target: PennyLane, want: []string{"qml.Hadamard(wires=0)", "qml.CNOT(wires=[0, 1])"}},
		{name: "xacc", target: XACC, want: []string{
			`circuit->addInstruction(provider->createInstruction("H", {0}));`,
			`circuit->addInstruction(provider->createInstruction("CNOT", {0, 1}));`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Instructions(bellPair(), tt.target)
			assert.Nil(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestAngleDefaultsToHalfPi(t *testing.T) {
	c := &circuit.Circuit{
		QubitCount: 1,
		Placements: []circuit.Placement{
			{Kind: circuit.RX, Qubit: 0, Column: 0},
			{Kind: circuit.RZ, Qubit: 0, Column: 1, Angle: circuit.Angle(-0.5)},
		},
	}
	lines, err := Instructions(c, QASM)
	assert.Nil(t, err)
	assert.Equal(t, []string{"rx(1.5707963267948966) q[0];", "rz(-0.5) q[0];"}, lines)

	lines, err = Instructions(c, Braket)
	assert.Nil(t, err)
	assert.Equal(t, "circuit.rx(0, 1.5707963267948966)", lines[0])
}

func TestTwoQubitGateOutsideRegisterIsSkipped(t *testing.T) {
	// Only reachable through a hand-built circuit; Model never produces one.
	c := &circuit.Circuit{
		QubitCount: 2,
		Placements: []circuit.Placement{
			{Kind: circuit.H, Qubit: 0, Column: 0},
			{Kind: circuit.CZ, Qubit: 1, Column: 1},
		},
	}
	for _, target := range Targets() {
		lines, err := Instructions(c, target)
		assert.Nil(t, err)
		assert.Len(t, lines, 1, target)
	}
}

func TestEpilogueReferencesRegister(t *testing.T) {
	c := circuit.New()
	tests := []struct {
		target Target
		want   string
	}{
		{target: Qiskit, want: "QuantumRegister(3, 'q')"},
		{target: Cirq, want: "range(3)"},
		{target: QSharp, want: "for i in 0..2"},
		{target: Braket, want: "circuit.i(range(3))"},
		{target: Quil, want: "qubits 0 1 2"},
		{target: PennyLane, want: "for i in range(3)"},
		{target: XACC, want: "xacc::qalloc(3)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			code, err := Generate(c, tt.target)
			assert.Nil(t, err)
			assert.True(t, strings.Contains(code, tt.want), code)
		})
	}
}

func TestUnsupportedTarget(t *testing.T) {
	_, err := Generate(circuit.New(), Target("fortran"))
	assert.True(t, errors.Is(err, common.ErrUnsupportedTarget))

	_, err = ParseTarget("fortran")
	assert.True(t, errors.Is(err, common.ErrUnsupportedTarget))

	got, err := ParseTarget(" PennyLane ")
	assert.Nil(t, err)
	assert.Equal(t, PennyLane, got)
	assert.Equal(t, "bell.cpp", FileName("bell", XACC))
}

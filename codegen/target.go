package codegen

import (
	"fmt"

	"github.com/qcanvas-team/qcanvas-engine/common"
)

type Target string

const (
	Qiskit    Target = "qiskit"
	QASM      Target = "qasm"
	Cirq      Target = "cirq"
	QSharp    Target = "qsharp"
	Braket    Target = "braket"
	Quil      Target = "quil"
	PennyLane Target = "pennylane"
	XACC      Target = "xacc"
)

const DefaultTarget = Qiskit

var targets = []Target{Qiskit, QASM, Cirq, QSharp, Braket, Quil, PennyLane, XACC}

var extensions = map[Target]string{
	Qiskit:    ".py",
	QASM:      ".qasm",
	Cirq:      ".py",
	QSharp:    ".qs",
	Braket:    ".py",
	Quil:      ".quil",
	PennyLane: ".py",
	XACC:      ".cpp",
}

var descriptions = map[Target]string{
	Qiskit:    "Qiskit gate calls on an Aer statevector simulator",
	QASM:      "OpenQASM 2.0 with register declarations",
	Cirq:      "Cirq circuit built with appended operations",
	QSharp:    "Q# operation with an entry point",
	Braket:    "Amazon Braket SDK calls",
	Quil:      "Quil instructions, one per line",
	PennyLane: "PennyLane QNode returning expectation values",
	XACC:      "XACC C++ instruction builder",
}

// Targets lists every export target in display order.
func Targets() []Target {
	t := make([]Target, len(targets))
	copy(t, targets)
	return t
}

func ParseTarget(s string) (Target, error) {
	for _, t := range targets {
		if common.NormalizeName(s) == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnsupportedTarget, s)
}

func (t Target) Extension() string {
	return extensions[t]
}

func (t Target) Description() string {
	return descriptions[t]
}

// FileName appends the target's extension to base.
func FileName(base string, t Target) string {
	return base + t.Extension()
}

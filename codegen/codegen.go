// Package codegen lowers a circuit into the source text of one of the
// supported quantum programming notations.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

// instructionTable holds one format string per gate kind. Arguments are
// %[1]d the primary qubit, %[2]d the second operand and %[3]s the angle.
type instructionTable [circuit.NumGateKinds]string

type backend struct {
	target       Target
	indent       string
	instructions instructionTable
	header       func(c *circuit.Circuit) string
	epilogue     func(c *circuit.Circuit) string
}

var backends = map[Target]*backend{
	Qiskit:    qiskitBackend,
	QASM:      qasmBackend,
	Cirq:      cirqBackend,
	QSharp:    qsharpBackend,
	Braket:    braketBackend,
	Quil:      quilBackend,
	PennyLane: pennylaneBackend,
	XACC:      xaccBackend,
}

// Generate is deterministic: the same circuit and target always produce the
// same text. Placements are emitted in ascending (column, qubit) order.
func Generate(c *circuit.Circuit, t Target) (string, error) {
	b, ok := backends[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedTarget, t)
	}
	return b.generate(c), nil
}

// Instructions returns only the gate instruction lines, without header and
// epilogue.
func Instructions(c *circuit.Circuit, t Target) ([]string, error) {
	b, ok := backends[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedTarget, t)
	}
	return b.lines(c), nil
}

func (b *backend) generate(c *circuit.Circuit) string {
	var sb strings.Builder
	sb.WriteString(b.header(c))
	for _, line := range b.lines(c) {
		sb.WriteString(b.indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(b.epilogue(c))
	return sb.String()
}

func (b *backend) lines(c *circuit.Circuit) []string {
	lines := make([]string, 0, c.Len())
	for _, p := range c.Sorted() {
		if !p.Fits(c.QubitCount) {
			// Kept for compatibility: a two-qubit gate whose second operand is
			// past the register is dropped from the output.
			zap.L().Debug(fmt.Sprintf("[%s] skipped %s: second operand outside %d qubits",
				b.target, p, c.QubitCount))
			continue
		}
		lines = append(lines, fmt.Sprintf(b.instructions[p.Kind], p.Qubit, p.Qubit+1, formatAngle(p)))
	}
	return lines
}

func formatAngle(p circuit.Placement) string {
	return strconv.FormatFloat(p.AngleOrDefault(), 'f', -1, 64)
}

// qubitList renders "0, 1, 2" for n qubits.
func qubitList(n int, sep string) string {
	qs := make([]string, n)
	for i := range qs {
		qs[i] = strconv.Itoa(i)
	}
	return strings.Join(qs, sep)
}

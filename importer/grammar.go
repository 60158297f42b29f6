package importer

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
)

// operand matches "q[3]", "qubits[3]", "q3" and a bare "3".
func op(name string) string {
	return fmt.Sprintf(`\w*?\[?(?P<%s>\d+)\]?`, name)
}

// rule recognises one gate invocation. Named groups: gate, angle, q0, q1.
// A rule with a fixed kind has no gate group.
type rule struct {
	re    *regexp.Regexp
	fixed *circuit.GateKind
}

type grammar struct {
	language Language
	rules    []rule
	aliases  map[string]circuit.GateKind
}

// match returns the recognised line as a raw instruction.
func (g *grammar) match(line string) (instruction, bool) {
	for _, r := range g.rules {
		m := r.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ins := instruction{second: -1}
		for i, name := range r.re.SubexpNames() {
			v := m[i]
			switch name {
			case "gate":
				ins.gate = v
			case "angle":
				ins.angle = v
				ins.hasAngle = true
			case "q0":
				ins.first, _ = strconv.Atoi(v)
			case "q1":
				ins.second, _ = strconv.Atoi(v)
			}
		}
		if r.fixed != nil {
			ins.kind = *r.fixed
		} else if k, ok := g.aliases[ins.gate]; ok {
			ins.kind = k
		} else {
			k, err := circuit.ParseGateKind(ins.gate)
			if err != nil {
				return instruction{}, false
			}
			ins.kind = k
		}
		return ins, true
	}
	return instruction{}, false
}

func fixed(k circuit.GateKind) *circuit.GateKind {
	return &k
}

// angleExpr admits one level of parentheses inside a gate's angle argument.
const angleExpr = `(?:[^()]|\([^()]*\))*`

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

var grammars = map[Language]*grammar{
	QASM: {
		language: QASM,
		rules: []rule{
			{re: compile(`(?i)^(?P<gate>[hxyzst])\s+` + op("q0") + `\s*;`)},
			{re: compile(`(?i)^(?P<gate>r[xyz])\s*\((?P<angle>` + angleExpr + `)\)\s*` + op("q0") + `\s*;`)},
			{re: compile(`(?i)^(?P<gate>cx|cz|swap|cnot)\s+` + op("q0") + `\s*,\s*` + op("q1") + `\s*;`)},
			{re: compile(`(?i)^measure\s+` + op("q0")), fixed: fixed(circuit.MEASURE)},
		},
	},
	Qiskit: {
		language: Qiskit,
		rules: []rule{
			{re: compile(`^\w+\.(?P<gate>h|x|y|z|s|t)\(\s*` + op("q0") + `\s*\)`)},
			{re: compile(`^\w+\.(?P<gate>rx|ry|rz)\(\s*(?P<angle>[^,]+?)\s*,\s*` + op("q0") + `\s*\)`)},
			{re: compile(`^\w+\.(?P<gate>cx|cz|swap|cnot)\(\s*` + op("q0") + `\s*,\s*` + op("q1") + `\s*\)`)},
			{re: compile(`^\w+\.measure\(\s*` + op("q0") + `\s*[,)]`), fixed: fixed(circuit.MEASURE)},
		},
	},
	Cirq: {
		language: Cirq,
		rules: []rule{
			{re: compile(`cirq\.(?P<gate>H|X|Y|Z|S|T)\(\s*` + op("q0") + `\s*\)`)},
			{re: compile(`cirq\.(?P<gate>rx|ry|rz|Rx|Ry|Rz)\((?:rads\s*=\s*)?(?P<angle>` + angleExpr + `)\)\(\s*` + op("q0") + `\s*\)`)},
			{re: compile(`cirq\.(?P<gate>CNOT|CX|CZ|SWAP)\(\s*` + op("q0") + `\s*,\s*` + op("q1") + `\s*\)`)},
			{re: compile(`cirq\.measure\(\s*` + op("q0") + `\s*[,)]`), fixed: fixed(circuit.MEASURE)},
		},
	},
	Quil: {
		language: Quil,
		rules: []rule{
			{re: compile(`^(?P<gate>H|X|Y|Z|S|T)\s+(?P<q0>\d+)\s*$`)},
			{re: compile(`^(?P<gate>RX|RY|RZ)\((?P<angle>` + angleExpr + `)\)\s+(?P<q0>\d+)\s*$`)},
			{re: compile(`^(?P<gate>CNOT|CZ|SWAP)\s+(?P<q0>\d+)\s+(?P<q1>\d+)\s*$`)},
			{re: compile(`^MEASURE\s+(?P<q0>\d+)`), fixed: fixed(circuit.MEASURE)},
		},
	},
	PennyLane: {
		language: PennyLane,
		rules: []rule{
			{re: compile(`qml\.(?P<gate>Hadamard|PauliX|PauliY|PauliZ|S|T)\(\s*(?:wires\s*=\s*)?\[?(?P<q0>\d+)\]?\s*\)`)},
			{re: compile(`qml\.(?P<gate>RX|RY|RZ)\(\s*(?P<angle>[^,]+?)\s*,\s*(?:wires\s*=\s*)?\[?(?P<q0>\d+)\]?\s*\)`)},
			{re: compile(`qml\.(?P<gate>CNOT|CZ|SWAP)\(\s*(?:wires\s*=\s*)?\[\s*(?P<q0>\d+)\s*,\s*(?P<q1>\d+)\s*\]\s*\)`)},
			{re: compile(`qml\.measure\(\s*(?:wires\s*=\s*)?(?P<q0>\d+)`), fixed: fixed(circuit.MEASURE)},
		},
		aliases: map[string]circuit.GateKind{
			"Hadamard": circuit.H,
			"PauliX":   circuit.X,
			"PauliY":   circuit.Y,
			"PauliZ":   circuit.Z,
		},
	},
}

package circuit

import (
	"fmt"
	"math"
	"strings"
)

// DefaultAngle is applied by consumers to parametric placements without an angle.
const DefaultAngle = math.Pi / 2

type GateKind int

const (
	H GateKind = iota
	X
	Y
	Z
	S
	T
	RX
	RY
	RZ
	CX
	CZ
	SWAP
	MEASURE

	NumGateKinds = int(MEASURE) + 1
)

var gateKindNames = [NumGateKinds]string{
	H:       "H",
	X:       "X",
	Y:       "Y",
	Z:       "Z",
	S:       "S",
	T:       "T",
	RX:      "RX",
	RY:      "RY",
	RZ:      "RZ",
	CX:      "CX",
	CZ:      "CZ",
	SWAP:    "SWAP",
	MEASURE: "MEASURE",
}

func GateKinds() []GateKind {
	kinds := make([]GateKind, 0, NumGateKinds)
	for k := 0; k < NumGateKinds; k++ {
		kinds = append(kinds, GateKind(k))
	}
	return kinds
}

func (k GateKind) IsValid() bool {
	return k >= H && int(k) < NumGateKinds
}

func (k GateKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("GateKind(%d)", int(k))
	}
	return gateKindNames[k]
}

// Arity is the number of qubits the gate acts on.
func (k GateKind) Arity() int {
	switch k {
	case CX, CZ, SWAP:
		return 2
	default:
		return 1
	}
}

func (k GateKind) IsParametric() bool {
	return k == RX || k == RY || k == RZ
}

func (k GateKind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("unknown gate kind %d", int(k))
	}
	return []byte(strings.ToLower(k.String())), nil
}

func (k *GateKind) UnmarshalText(b []byte) error {
	kind, err := ParseGateKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseGateKind is case-insensitive and accepts CNOT and M as aliases.
func ParseGateKind(s string) (GateKind, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	switch name {
	case "CNOT":
		return CX, nil
	case "M":
		return MEASURE, nil
	}
	for k, n := range gateKindNames {
		if n == name {
			return GateKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown gate %q", s)
}

// Placement is one gate occupying one cell of the grid. Two-qubit kinds act on
// Qubit and Qubit+1.
type Placement struct {
	Kind   GateKind `json:"kind"`
	Qubit  int      `json:"qubit"`
	Column int      `json:"column"`
	Angle  *float64 `json:"angle,omitempty"`
}

func (p Placement) AngleOrDefault() float64 {
	if p.Angle == nil {
		return DefaultAngle
	}
	return *p.Angle
}

// Qubits returns every operand index of the placement.
func (p Placement) Qubits() []int {
	if p.Kind.Arity() == 2 {
		return []int{p.Qubit, p.Qubit + 1}
	}
	return []int{p.Qubit}
}

// Fits reports whether every operand of p exists in a register of qubitCount qubits.
func (p Placement) Fits(qubitCount int) bool {
	return p.Qubit >= 0 && p.Qubit+p.Kind.Arity()-1 < qubitCount
}

func (p Placement) String() string {
	if p.Kind.IsParametric() {
		return fmt.Sprintf("%s(%g)@q%d,c%d", p.Kind, p.AngleOrDefault(), p.Qubit, p.Column)
	}
	return fmt.Sprintf("%s@q%d,c%d", p.Kind, p.Qubit, p.Column)
}

func Angle(a float64) *float64 {
	return &a
}

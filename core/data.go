package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// ProbabilityTolerance bounds how far the probabilities of a result may sum
// away from 1.
const ProbabilityTolerance = 1e-9

type BlochVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Probabilities maps a bitstring to its probability. Character i of the
// bitstring is the outcome of qubit i.
type Probabilities map[string]float64

type SimulationResult struct {
	Probabilities Probabilities
	BlochVectors  []BlochVector
}

// Bitstrings lists all 2^n bitstrings of length n in ascending order.
func Bitstrings(n int) []string {
	out := make([]string, 1<<n)
	for i := range out {
		var sb strings.Builder
		for q := 0; q < n; q++ {
			if i&(1<<(n-1-q)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		out[i] = sb.String()
	}
	return out
}

// Validate checks the shape every simulator has to produce for qubitCount
// qubits.
func (r *SimulationResult) Validate(qubitCount int) error {
	if len(r.Probabilities) != 1<<qubitCount {
		return errors.Errorf("%d probabilities for %d qubits", len(r.Probabilities), qubitCount)
	}
	sum := 0.0
	for _, b := range Bitstrings(qubitCount) {
		p, ok := r.Probabilities[b]
		if !ok {
			return errors.Errorf("missing bitstring %s", b)
		}
		if p < 0 || math.IsNaN(p) {
			return errors.Errorf("probability of %s is %v", b, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > ProbabilityTolerance {
		return errors.Errorf("probabilities sum to %v", sum)
	}
	if len(r.BlochVectors) != qubitCount {
		return errors.Errorf("%d bloch vectors for %d qubits", len(r.BlochVectors), qubitCount)
	}
	for i, v := range r.BlochVectors {
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < -1 || c > 1 || math.IsNaN(c) {
				return errors.Errorf("bloch vector %d out of range: %+v", i, v)
			}
		}
	}
	return nil
}

// Normalize rescales the probabilities so that they sum to 1. All-zero input
// becomes the uniform distribution.
func (p Probabilities) Normalize() {
	sum := 0.0
	for _, v := range p {
		sum += v
	}
	for k, v := range p {
		if sum == 0 {
			p[k] = 1 / float64(len(p))
		} else {
			p[k] = v / sum
		}
	}
}

func (p Probabilities) keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Encode writes the result with bitstrings in ascending order.
func (r *SimulationResult) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("probabilities")
	e.ObjStart()
	for _, k := range r.Probabilities.keys() {
		e.FieldStart(k)
		e.Float64(r.Probabilities[k])
	}
	e.ObjEnd()
	e.FieldStart("blochVectors")
	e.ArrStart()
	for _, v := range r.BlochVectors {
		e.ObjStart()
		e.FieldStart("x")
		e.Float64(v.X)
		e.FieldStart("y")
		e.Float64(v.Y)
		e.FieldStart("z")
		e.Float64(v.Z)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}

func (r *SimulationResult) MarshalJSON() ([]byte, error) {
	e := &jx.Encoder{}
	r.Encode(e)
	return e.Bytes(), nil
}

func (r *SimulationResult) UnmarshalJSON(b []byte) error {
	r.Probabilities = make(Probabilities)
	r.BlochVectors = nil
	d := jx.DecodeBytes(b)
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "probabilities":
			return d.Obj(func(d *jx.Decoder, bits string) error {
				v, err := d.Float64()
				if err != nil {
					return err
				}
				r.Probabilities[bits] = v
				return nil
			})
		case "blochVectors":
			return d.Arr(func(d *jx.Decoder) error {
				var v BlochVector
				if err := d.Obj(func(d *jx.Decoder, axis string) error {
					f, err := d.Float64()
					if err != nil {
						return err
					}
					switch axis {
					case "x":
						v.X = f
					case "y":
						v.Y = f
					case "z":
						v.Z = f
					}
					return nil
				}); err != nil {
					return err
				}
				r.BlochVectors = append(r.BlochVectors, v)
				return nil
			})
		default:
			return d.Skip()
		}
	})
}

func (r *SimulationResult) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		zap.L().Error("Failed to marshal core.SimulationResult")
		return ""
	}
	return string(pretty.Pretty(b))
}

// CircuitInfo summarises a stored circuit.
type CircuitInfo struct {
	GateCount  int  `json:"gateCount"`
	Depth      int  `json:"depth"`
	Entangling bool `json:"entangling"`
}

func NewCircuitInfo(c *circuit.Circuit) CircuitInfo {
	return CircuitInfo{
		GateCount:  c.Len(),
		Depth:      c.UsedDepth(),
		Entangling: c.IsEntangling(),
	}
}

// CircuitDocument is a saved circuit. Only QubitCount and Gates are needed
// to rebuild the circuit; the rest is metadata.
type CircuitDocument struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	QubitCount int                 `json:"qubitCount"`
	Gates      []circuit.Placement `json:"gates"`
	Language   string              `json:"language"`
	CreatedAt  strfmt.DateTime     `json:"createdAt"`
	OwnerID    string              `json:"ownerId"`
	Info       CircuitInfo         `json:"info"`
}

func NewCircuitDocument(name, language, ownerID string, c *circuit.Circuit) *CircuitDocument {
	return &CircuitDocument{
		ID:         uuid.NewString(),
		Name:       name,
		QubitCount: c.QubitCount,
		Gates:      c.Clone().Placements,
		Language:   language,
		CreatedAt:  strfmt.DateTime(time.Now()),
		OwnerID:    ownerID,
		Info:       NewCircuitInfo(c),
	}
}

// ToCircuit validates the document and rebuilds the circuit.
func (d *CircuitDocument) ToCircuit() (*circuit.Circuit, error) {
	c, err := circuit.NewWithPlacements(d.QubitCount, d.Gates)
	if err != nil {
		return nil, errors.Wrapf(err, "document %s", d.ID)
	}
	return c, nil
}

func (d *CircuitDocument) Clone() *CircuitDocument {
	c := deepcopy.Copy(d).(*CircuitDocument)
	c.CreatedAt = *d.CreatedAt.DeepCopy()
	return c
}

func (d *CircuitDocument) Marshal() ([]byte, error) {
	return jsonIter.Marshal(d)
}

func UnmarshalCircuitDocument(b []byte) (*CircuitDocument, error) {
	d := &CircuitDocument{}
	if err := jsonIter.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal circuit document: %w", err)
	}
	return d, nil
}

func (d *CircuitDocument) String() string {
	b, err := d.Marshal()
	if err != nil {
		zap.L().Error("Failed to marshal core.CircuitDocument")
		return ""
	}
	return string(pretty.Pretty(b))
}

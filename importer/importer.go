// Package importer recovers gate placements from source text written in one
// of the importable notations.
package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"go.uber.org/zap"
)

// instruction is a recognised line before it is laid out on the grid.
type instruction struct {
	kind     circuit.GateKind
	gate     string
	first    int
	second   int
	angle    string
	hasAngle bool
}

// Result is what an import recovered. Column assignment is sequential, so the
// n-th recognised line sits in column n-1.
type Result struct {
	Language   Language
	QubitCount int
	Placements []circuit.Placement
	// Skipped counts non-blank lines that matched no pattern.
	Skipped int
	// DefaultedAngles counts rotations whose angle could not be read and
	// were placed with the default angle instead.
	DefaultedAngles int
}

// Circuit builds a fresh circuit from the result.
func (r *Result) Circuit() (*circuit.Circuit, error) {
	return circuit.NewWithPlacements(r.QubitCount, r.Placements)
}

// Import scans source line by line. Lines that match nothing are skipped.
func Import(source string, lang Language) (*Result, error) {
	g, ok := grammars[lang]
	if !ok {
		return nil, errors.Wrapf(common.ErrUnsupportedLanguage, "%q", lang)
	}

	res := &Result{Language: lang, QubitCount: circuit.MinQubits}
	maxIndex := -1
	for n, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		ins, ok := g.match(line)
		if !ok {
			res.Skipped++
			continue
		}
		p, defaulted, err := ins.placement(len(res.Placements))
		if err != nil {
			zap.L().Debug(fmt.Sprintf("[%s] skipped line %d %q: %s", lang, n+1, line, err))
			res.Skipped++
			continue
		}
		for _, q := range ins.operands() {
			if q >= circuit.MaxQubits {
				return nil, errors.Wrapf(common.ErrInvalidCoordinate,
					"line %d: qubit %d exceeds %d qubits", n+1, q, circuit.MaxQubits)
			}
			if q > maxIndex {
				maxIndex = q
			}
		}
		if p.Column >= circuit.Depth {
			return nil, errors.Wrapf(common.ErrInvalidCoordinate,
				"line %d: the grid holds only %d sequential steps, one per recognised gate line",
				n+1, circuit.Depth)
		}
		if defaulted {
			res.DefaultedAngles++
		}
		res.Placements = append(res.Placements, p)
	}

	if len(res.Placements) == 0 {
		return nil, errors.Wrapf(common.ErrNoGatesFound, "%s source", lang)
	}
	if maxIndex+1 > res.QubitCount {
		res.QubitCount = maxIndex + 1
	}
	zap.L().Debug(fmt.Sprintf("[%s] imported %d gates on %d qubits, skipped %d lines, defaulted %d angles",
		lang, len(res.Placements), res.QubitCount, res.Skipped, res.DefaultedAngles))
	return res, nil
}

func (ins instruction) operands() []int {
	if ins.second >= 0 {
		return []int{ins.first, ins.second}
	}
	return []int{ins.first}
}

// placement lays the instruction on the given column. Two-qubit gates sit on
// the lower of their two operands. defaulted reports an unreadable angle.
func (ins instruction) placement(column int) (p circuit.Placement, defaulted bool, err error) {
	p = circuit.Placement{Kind: ins.kind, Qubit: ins.first, Column: column}
	if ins.kind.Arity() == 2 {
		if ins.second < 0 || ins.second == ins.first {
			return p, false, fmt.Errorf("%s needs two distinct qubits", ins.kind)
		}
		if ins.second < ins.first {
			p.Qubit = ins.second
		}
	}
	if ins.kind.IsParametric() && ins.hasAngle {
		a, err := ParseAngle(ins.angle)
		if err != nil {
			// an unreadable angle falls back to the default
			zap.L().Debug(fmt.Sprintf("angle %q: %s", ins.angle, err))
			defaulted = true
		} else {
			p.Angle = circuit.Angle(a)
		}
	}
	return p, defaulted, nil
}

// ParseAngle reads a numeric literal or a product/quotient of literals and pi
// in any of its spellings: pi, np.pi, math.pi, PI(), π. Factors may carry a
// sign and may be parenthesised sub-expressions.
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "theta=")
	s = strings.TrimPrefix(s, "rads=")
	if s == "" {
		return 0, errors.New("empty angle")
	}
	return parseProduct(s)
}

// parseProduct splits s at the '*' and '/' that sit outside parentheses.
func parseProduct(s string) (float64, error) {
	value := 1.0
	op := byte('*')
	start, depth := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				if depth < 0 {
					return 0, errors.Errorf("unbalanced parentheses in %q", s)
				}
				continue
			case '*', '/':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		} else if depth != 0 {
			return 0, errors.Errorf("unbalanced parentheses in %q", s)
		}
		f, err := parseFactor(s[start:i])
		if err != nil {
			return 0, err
		}
		if op == '*' {
			value *= f
		} else {
			if f == 0 {
				return 0, errors.Errorf("division by zero in %q", s)
			}
			value /= f
		}
		if i < len(s) {
			op = s[i]
		}
		start = i + 1
	}
	return value, nil
}

func parseFactor(s string) (float64, error) {
	s = strings.TrimSpace(s)
	sign := 1.0
	for strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		if s[0] == '-' {
			sign = -sign
		}
		s = strings.TrimSpace(s[1:])
	}
	switch strings.ToLower(s) {
	case "pi", "np.pi", "math.pi", "numpy.pi", "pi()", "π":
		return sign * math.Pi, nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		f, err := parseProduct(s[1 : len(s)-1])
		return sign * f, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "angle factor %q", s)
	}
	return sign * f, nil
}

// Package render draws circuits and simulation results for a terminal.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/session"
)

// padCenter centres s within width, cutting it when it does not fit.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

func displayName(k circuit.GateKind) string {
	if k == circuit.MEASURE {
		return "M"
	}
	return k.String()
}

func controlSymbol(k circuit.GateKind) string {
	if k == circuit.SWAP {
		return "×"
	}
	return "●"
}

func targetSymbol(k circuit.GateKind) string {
	switch k {
	case circuit.CZ:
		return "●"
	case circuit.SWAP:
		return "×"
	default:
		return "⊕"
	}
}

func wire(symbol string) string {
	dashL := (cellW - 1) / 2
	return strings.Repeat("─", dashL) + gateStyle.Render(symbol) + strings.Repeat("─", cellW-dashL-1)
}

// cell returns the wire segment of qubit q in column col.
func cell(c *circuit.Circuit, q, col int) string {
	if p, ok := c.At(q, col); ok && p.Fits(c.QubitCount) {
		if p.Kind.Arity() == 2 {
			return wire(controlSymbol(p.Kind))
		}
		return "─┤" + gateStyle.Render(padCenter(displayName(p.Kind), cellW-4)) + "├─"
	}
	if q > 0 {
		if p, ok := c.At(q-1, col); ok && p.Kind.Arity() == 2 && p.Fits(c.QubitCount) {
			return wire(targetSymbol(p.Kind))
		}
	}
	return strings.Repeat("─", cellW)
}

// overlaps names the two-qubit gates whose target wire also holds a gate in
// the same column. The grid shows the gate on that wire, not the target.
func overlaps(c *circuit.Circuit) []string {
	var notes []string
	for _, p := range c.Sorted() {
		if p.Kind.Arity() != 2 || !p.Fits(c.QubitCount) {
			continue
		}
		if other, ok := c.At(p.Qubit+1, p.Column); ok {
			notes = append(notes, fmt.Sprintf("%s q[%d] col %d: target q[%d] is hidden by %s",
				p.Kind, p.Qubit, p.Column, p.Qubit+1, displayName(other.Kind)))
		}
	}
	return notes
}

// Grid draws one wire per qubit across every column of the grid, followed by
// the angles of the parametric gates.
func Grid(c *circuit.Circuit) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Circuit: %d qubits, %d gates", c.QubitCount, c.Len())))
	sb.WriteString("\n")

	header := strings.Repeat(" ", labelVisualW)
	for col := 0; col < circuit.Depth; col++ {
		header += dimStyle.Render(padCenter(strconv.Itoa(col), cellW))
	}
	sb.WriteString(header + "\n")

	for q := 0; q < c.QubitCount; q++ {
		line := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))) + "──"
		for col := 0; col < circuit.Depth; col++ {
			line += cell(c, q, col)
		}
		sb.WriteString(line + "\n")
	}

	for _, p := range c.Sorted() {
		if p.Kind.IsParametric() {
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("  %s q[%d] col %d: %s rad",
				p.Kind, p.Qubit, p.Column, strconv.FormatFloat(p.AngleOrDefault(), 'f', -1, 64))))
		}
	}
	for _, note := range overlaps(c) {
		fmt.Fprintf(&sb, "%s\n", warningStyle.Render("  "+note))
	}
	return panelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// Result draws a bar per basis state and the Bloch vector of every qubit.
func Result(r *core.SimulationResult) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Probabilities"))
	sb.WriteString("\n")

	keys := make([]string, 0, len(r.Probabilities))
	for b := range r.Probabilities {
		keys = append(keys, b)
	}
	sort.Strings(keys)
	for _, b := range keys {
		p := r.Probabilities[b]
		n := int(math.Round(p * barW))
		fmt.Fprintf(&sb, "%s │%s%s %.4f\n",
			qubitLabelStyle.Render(b),
			barStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barW-n),
			p)
	}

	sb.WriteString(titleStyle.Render("Bloch vectors"))
	sb.WriteString("\n")
	for q, v := range r.BlochVectors {
		fmt.Fprintf(&sb, "%s x=%+.3f y=%+.3f z=%+.3f\n",
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)), v.X, v.Y, v.Z)
	}
	return panelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// Notice colours a session notice by its level.
func Notice(n session.Notice) string {
	switch n.Level {
	case session.Success:
		return successStyle.Render(n.String())
	case session.Info:
		return infoStyle.Render(n.String())
	case session.Warning:
		return warningStyle.Render(n.String())
	default:
		return errorStyle.Render(n.String())
	}
}

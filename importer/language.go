package importer

import (
	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/common"
)

// Language is the key of an importable source notation. The keys are shared
// with the export targets of the same notation.
type Language string

const (
	QASM      Language = "qasm"
	Qiskit    Language = "qiskit"
	Cirq      Language = "cirq"
	Quil      Language = "quil"
	PennyLane Language = "pennylane"
)

const DefaultLanguage = QASM

var languages = []Language{QASM, Qiskit, Cirq, Quil, PennyLane}

func Languages() []Language {
	l := make([]Language, len(languages))
	copy(l, languages)
	return l
}

func ParseLanguage(s string) (Language, error) {
	for _, l := range languages {
		if common.NormalizeName(s) == string(l) {
			return l, nil
		}
	}
	return "", errors.Wrapf(common.ErrUnsupportedLanguage, "%q", s)
}

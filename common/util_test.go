//go:build unit
// +build unit

package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAsset(t *testing.T) {
	qasm, err := GetAsset("bell_pair.qasm")
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(qasm, "OPENQASM 2.0;\n"))
	assert.Contains(t, qasm, "cx q[0],q[1];")

	_, err = GetAsset("missing.qasm")
	assert.NotNil(t, err)
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "bell.qasm")
	require.Nil(t, WriteFile(path, "h q[0];\n"))
	got, err := ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, "h q[0];\n", got)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "qasm", want: "qasm"},
		{in: " PennyLane ", want: "pennylane"},
		{in: "Open-QASM", want: "openqasm"},
		{in: "open_qasm", want: "openqasm"},
		{in: "Q Sharp", want: "qsharp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestIsDirWritable(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, IsDirWritable(dir))
	assert.NotNil(t, IsDirWritable(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "file")
	require.Nil(t, os.WriteFile(file, nil, 0644))
	assert.NotNil(t, IsDirWritable(file))
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(errors.Wrap(ErrEmptyCell, "(0,0)")))
	assert.True(t, IsRecoverable(ErrBusy))
	assert.False(t, IsRecoverable(ErrUnsupportedTarget))
	assert.False(t, IsRecoverable(nil))
}

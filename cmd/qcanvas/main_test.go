//go:build unit
// +build unit

package main

import (
	"testing"

	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/db"
	"github.com/qcanvas-team/qcanvas-engine/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideDIContainer(t *testing.T) {
	tests := []struct {
		name      string
		params    DIContainerParameters
		wantStore interface{}
		wantSim   string
		wantErr   bool
	}{
		{
			name:      "memory and random",
			params:    DIContainerParameters{Store: "memory", Simulator: "random"},
			wantStore: &core.MemoryStore{},
			wantSim:   simulator.PlaceholderName,
		},
		{
			name:      "sqlite and statevector",
			params:    DIContainerParameters{Store: "sqlite", Simulator: "statevector"},
			wantStore: &db.SQLiteStore{},
			wantSim:   simulator.StatevectorName,
		},
		{
			name:    "unknown store",
			params:  DIContainerParameters{Store: "redis", Simulator: "random"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &App{DIContainerParameters: &tt.params}
			c, err := a.provideDIContainer()
			require.Nil(t, err)
			err = c.Invoke(func(cs core.CircuitStore, sim core.Simulator) {
				assert.IsType(t, tt.wantStore, cs)
				assert.Equal(t, tt.wantSim, sim.Name())
			})
			if tt.wantErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestParserHasEveryCommand(t *testing.T) {
	names := []string{}
	for _, c := range parser.Commands() {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{
		"export", "import", "simulate", "save", "load", "list", "delete", "targets", "info", "shell",
	}, names)
}

func TestSetupAndTearDown(t *testing.T) {
	app.DIContainerParameters = &DIContainerParameters{Store: "memory", Simulator: "statevector"}
	rt, err := setup(&core.Conf{
		DisableStdoutLog: true,
		LogLevel:         "error",
		SettingPath:      "testdata/missing.toml",
		OwnerID:          "alice",
	})
	require.Nil(t, err)
	assert.Equal(t, "alice", rt.session.CurrentUser())
	assert.NotNil(t, core.CurrentInfo)
	assert.Nil(t, rt.tearDown())
}

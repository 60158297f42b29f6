package core

//go:generate mockgen -source=syscomponent.go -destination=mock_store.go -package=core CircuitStore

import (
	"context"

	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

var systemComponents *SystemComponents

// Simulator turns a circuit into probabilities and Bloch vectors.
type Simulator interface {
	Setup(*Conf) error
	Name() string
	Simulate(context.Context, *circuit.Circuit) (*SimulationResult, error)
}

// CircuitStore persists circuit documents. Get and Delete of an unknown id
// fail with common.ErrNotFound.
type CircuitStore interface {
	Setup(*Conf) error
	Save(context.Context, *CircuitDocument) error
	Get(context.Context, string) (*CircuitDocument, error)
	List(ctx context.Context, ownerID string) ([]*CircuitDocument, error)
	Delete(context.Context, string) error
	Close() error
}

type SystemComponents struct {
	*dig.Container
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{con}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	zap.L().Debug("Setting up circuit store")
	err := s.Invoke(
		func(cs CircuitStore) error {
			return cs.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up simulator")
	err = s.Invoke(
		func(sim Simulator) error {
			return sim.Setup(conf)
		})
	if err != nil {
		return err
	}
	systemComponents = s
	return nil
}

func (s *SystemComponents) TearDown() error {
	var closeErr error
	err := s.Invoke(
		func(cs CircuitStore) {
			closeErr = cs.Close()
		})
	if err != nil {
		return err
	}
	return closeErr
}

func (s *SystemComponents) GetSimulator() Simulator {
	var sim Simulator
	_ = s.Invoke(func(x Simulator) {
		sim = x
	})
	return sim
}

func (s *SystemComponents) GetCircuitStore() CircuitStore {
	var cs CircuitStore
	_ = s.Invoke(func(x CircuitStore) {
		cs = x
	})
	return cs
}

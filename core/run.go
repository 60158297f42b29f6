package core

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/run"
	"go.uber.org/zap"
)

type RunContext struct {
	*run.Group
	context.Context
}

func NewRunContext() *RunContext {
	return &RunContext{
		Group:   &run.Group{},
		Context: context.Background(),
	}
}

type PeriodicTask struct {
	Period time.Duration
	PeriodicTaskImpl
}

type PeriodicTaskImpl interface {
	Setup() error
	RequirePeriodUpdate() (ok bool, duration time.Duration)
	Task()
	Cleanup()
}

type DefaultTaskImpl struct{}

func (v *DefaultTaskImpl) Setup() error {
	return nil
}

func (v *DefaultTaskImpl) RequirePeriodUpdate() (bool, time.Duration) {
	return false, 0
}

func (v *DefaultTaskImpl) Task() {}

func (v *DefaultTaskImpl) Cleanup() {}

// AddPeriodicTask runs the task once immediately and then every period until
// the group is interrupted.
func (rc *RunContext) AddPeriodicTask(t *PeriodicTask, taskName string) error {
	if t.Period <= 0 {
		return fmt.Errorf("period of %s must be positive, got %v", taskName, t.Period)
	}
	if err := t.Setup(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to setup/name:%s/reason:%s", taskName, err))
		return err
	}
	ctx, cancel := context.WithCancel(rc.Context)
	lastPeriod := t.Period
	rc.Group.Add(
		func() error {
			ticker := time.NewTicker(t.Period)
			zap.L().Debug(fmt.Sprintf("[PeriodicTask/%s/Start]", taskName))
			t.PeriodicTaskImpl.Task()
			for {
				select {
				case <-ctx.Done():
					ticker.Stop()
					t.PeriodicTaskImpl.Cleanup()
					zap.L().Debug(fmt.Sprintf("[PeriodicTask/%s/TearDown]Cleaned up periodic task", taskName))
					return nil
				case <-ticker.C:
					t.PeriodicTaskImpl.Task()
					ok, newPeriod := t.RequirePeriodUpdate()
					if ok && newPeriod != lastPeriod {
						zap.L().Info(fmt.Sprintf("[PeriodicTask/%s/ResetPeriod]from %v to %v",
							taskName, lastPeriod, newPeriod))
						ticker.Reset(newPeriod)
						lastPeriod = newPeriod
					}
				}
			}
		},
		func(error) {
			cancel()
		},
	)
	return nil
}

// AddActor adds a long-running function. stop must make execute return.
func (rc *RunContext) AddActor(name string, execute func() error, stop func()) {
	rc.Group.Add(
		func() error {
			zap.L().Debug(fmt.Sprintf("[Actor/%s/Start]", name))
			err := execute()
			zap.L().Debug(fmt.Sprintf("[Actor/%s/Stopped]", name))
			return err
		},
		func(error) {
			stop()
		},
	)
}

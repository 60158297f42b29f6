package main

import (
	"context"
	"fmt"

	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/importer"
	"github.com/qcanvas-team/qcanvas-engine/log"
	"github.com/qcanvas-team/qcanvas-engine/session"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// runtime is what every command works with.
type runtime struct {
	session *session.Session
	sc      *core.SystemComponents
	metrics *log.MetricsLogTaskImpl
	logger  *zap.Logger
}

func setup(conf *core.Conf) (*runtime, error) {
	logger, err := log.SetZap(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	rt := &runtime{logger: logger}

	core.ResetSetting()
	if err := core.ParseSettingFromPath(conf.SettingPath); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse settings/reason:%s", err))
		return nil, err
	}
	core.SetVersion(conf, versionByBuildFlag)
	zap.L().Debug(fmt.Sprintf("Providing DI Container with parameters %+v", app.DIContainerParameters))

	container, err := app.provideDIContainer()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up DI-Container. Reason:%s", err.Error()))
		return nil, err
	}
	rt.sc = core.NewSystemComponents(container)
	if err := rt.sc.Setup(conf); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to setting up Container. Reason:%s", err.Error()))
		return nil, err
	}
	core.SetInfo(conf)
	rt.session = session.New(rt.sc.GetSimulator(), rt.sc.GetCircuitStore(), conf.OwnerID)

	if dir := core.GetGlobalSetting().Metrics.Dir; dir != "" {
		m := log.NewMetricsLogTask(dir, rt.session)
		if err := m.Setup(); err != nil {
			zap.L().Warn(fmt.Sprintf("metrics log is disabled/reason:%s", err))
		} else {
			rt.metrics = m
		}
	}
	return rt, nil
}

// tearDown flushes metrics, closes the store and syncs the logger.
func (rt *runtime) tearDown() error {
	var err error
	if rt.metrics != nil {
		rt.metrics.Task()
		rt.metrics.Cleanup()
	}
	if rt.sc != nil {
		err = multierr.Append(err, rt.sc.TearDown())
	}
	if rt.logger != nil {
		// syncing stderr fails on some platforms and is not worth reporting
		_ = rt.logger.Sync()
	}
	return err
}

// circuitSource is the input shared by commands that work on one circuit.
type circuitSource struct {
	ID       string `long:"id" description:"id of a saved circuit"`
	Language string `short:"l" long:"language" description:"language of the source file, defaults to [import] default_language"`
}

// load fills the session from a saved circuit or from the file in args.
func (s *circuitSource) load(ctx context.Context, rt *runtime, args []string) error {
	if s.ID != "" {
		_, err := rt.session.Load(ctx, s.ID)
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("give one source file or --id")
	}
	var lang importer.Language
	if s.Language != "" {
		var err error
		if lang, err = importer.ParseLanguage(s.Language); err != nil {
			return err
		}
	}
	src, err := common.ReadFile(args[0])
	if err != nil {
		return err
	}
	res, err := rt.session.Import(src, lang)
	if err != nil {
		return err
	}
	rt.metrics.Event("import", "language", string(res.Language), "gates", len(res.Placements))
	return nil
}

// withRuntime runs f between setup and teardown.
func withRuntime(f func(ctx context.Context, rt *runtime) error) (err error) {
	rt, err := setup(app.Conf)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, rt.tearDown())
	}()
	return f(context.Background(), rt)
}

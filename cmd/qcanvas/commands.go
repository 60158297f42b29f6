package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/oklog/run"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"github.com/qcanvas-team/qcanvas-engine/codegen"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/log"
	"github.com/qcanvas-team/qcanvas-engine/render"
	"github.com/qcanvas-team/qcanvas-engine/shell"
)

func printJSON(b []byte) {
	fmt.Println(strings.TrimRight(string(pretty.Pretty(b)), "\n"))
}

type exportCmd struct {
	circuitSource
	Target string `short:"t" long:"target" description:"export target, defaults to [export] default_target"`
	Out    string `short:"o" long:"out" description:"write to this file instead of standard output; the target's extension is added when missing"`
}

func (c *exportCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		if err := c.load(ctx, rt, args); err != nil {
			return err
		}
		t := rt.session.Target()
		if c.Target != "" {
			var err error
			if t, err = codegen.ParseTarget(c.Target); err != nil {
				return err
			}
		}
		code, err := rt.session.Code(t)
		if err != nil {
			return err
		}
		rt.metrics.Event("export", "target", string(t))
		if c.Out == "" {
			fmt.Print(code)
			return nil
		}
		path := c.Out
		if !strings.HasSuffix(path, t.Extension()) {
			path = codegen.FileName(path, t)
		}
		if err := common.WriteFile(path, code); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	})
}

type importCmd struct {
	circuitSource
	JSON bool `long:"json" description:"print the recovered circuit as JSON"`
}

func (c *importCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		if err := c.load(ctx, rt, args); err != nil {
			return err
		}
		if c.JSON {
			b, err := jsonIter.Marshal(rt.session.Circuit())
			if err != nil {
				return err
			}
			printJSON(b)
			return nil
		}
		fmt.Println(render.Grid(rt.session.Circuit()))
		fmt.Println(render.Notice(rt.session.Status()))
		return nil
	})
}

type simulateCmd struct {
	circuitSource
	JSON    bool          `long:"json" description:"print the result as JSON"`
	Timeout time.Duration `long:"timeout" description:"give up after this long" default:"30s"`
}

func (c *simulateCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		if err := c.load(ctx, rt, args); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()
		r, err := rt.session.Simulate(ctx)
		if err != nil {
			return err
		}
		rt.metrics.Event("simulate", "qubits", len(r.BlochVectors))
		if c.JSON {
			b, err := r.MarshalJSON()
			if err != nil {
				return err
			}
			printJSON(b)
			return nil
		}
		fmt.Println(render.Result(r))
		return nil
	})
}

type saveCmd struct {
	Name     string `short:"n" long:"name" description:"name of the saved circuit" required:"true"`
	Language string `short:"l" long:"language" description:"language of the source file"`
	Target   string `short:"t" long:"target" description:"export target stored with the circuit"`
}

func (c *saveCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		src := circuitSource{Language: c.Language}
		if err := src.load(ctx, rt, args); err != nil {
			return err
		}
		if c.Target != "" {
			if err := rt.session.SetTarget(c.Target); err != nil {
				return err
			}
		}
		doc, err := rt.session.Save(ctx, c.Name)
		if err != nil {
			return err
		}
		fmt.Println(doc.ID)
		return nil
	})
}

type loadCmd struct {
	JSON bool `long:"json" description:"print the stored document as JSON"`
}

func (c *loadCmd) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("give one circuit id")
	}
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		doc, err := rt.session.Load(ctx, args[0])
		if err != nil {
			return err
		}
		if c.JSON {
			b, err := doc.Marshal()
			if err != nil {
				return err
			}
			printJSON(b)
			return nil
		}
		fmt.Println(render.Grid(rt.session.Circuit()))
		code, err := rt.session.CurrentCode()
		if err != nil {
			return err
		}
		fmt.Print(code)
		return nil
	})
}

type listCmd struct {
	Owner string `long:"owner" description:"owner to list, defaults to --owner of the global options"`
}

func (c *listCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		if c.Owner != "" {
			rt.session.SetCurrentUser(c.Owner)
		}
		docs, err := rt.session.List(ctx)
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Printf("%s  %-16s %-9s %d qubits %d gates  %s\n",
				d.ID, d.Name, d.Language, d.QubitCount, d.Info.GateCount, d.CreatedAt)
		}
		return nil
	})
}

type deleteCmd struct{}

func (c *deleteCmd) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("give at least one circuit id")
	}
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		for _, id := range args {
			if err := rt.session.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

type targetsCmd struct{}

func (c *targetsCmd) Execute(args []string) error {
	for _, t := range codegen.Targets() {
		fmt.Printf("%-10s %-6s %s\n", t, t.Extension(), t.Description())
	}
	return nil
}

type infoCmd struct{}

func (c *infoCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		fmt.Println(core.CurrentInfo.String())
		return nil
	})
}

type shellCmd struct{}

func (c *shellCmd) Execute(args []string) error {
	return withRuntime(func(ctx context.Context, rt *runtime) error {
		rc := core.NewRunContext()
		rc.Add(run.SignalHandler(rc.Context, os.Interrupt))

		version := &core.PeriodicTask{Period: time.Hour, PeriodicTaskImpl: &log.VersionLogTaskImpl{}}
		if err := rc.AddPeriodicTask(version, log.VersionLogTaskName); err != nil {
			return err
		}
		var events shell.EventRecorder
		if rt.metrics != nil {
			events = rt.metrics
			if sec := core.GetGlobalSetting().Metrics.PeriodSec; sec > 0 {
				metrics := &core.PeriodicTask{
					Period:           time.Duration(sec) * time.Second,
					PeriodicTaskImpl: rt.metrics,
				}
				if err := rc.AddPeriodicTask(metrics, log.MetricsLogTaskName); err != nil {
					return err
				}
			}
		}
		shell.New(rt.session, os.Stdin, os.Stdout, events).Register(rc)

		fmt.Println(render.Grid(rt.session.Circuit()))
		fmt.Println("type help for commands")
		zap.L().Debug("Starting run-group")
		err := rc.Run()
		var sigErr run.SignalError
		if errors.As(err, &sigErr) {
			return nil
		}
		return err
	})
}

// Package shell is a line-oriented interpreter over a session. Commands are
// queued in arrival order and executed by a single worker.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-faster/errors"
	"github.com/qcanvas-team/qcanvas-engine/circuit"
	"github.com/qcanvas-team/qcanvas-engine/codegen"
	"github.com/qcanvas-team/qcanvas-engine/common"
	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/importer"
	"github.com/qcanvas-team/qcanvas-engine/render"
	"github.com/qcanvas-team/qcanvas-engine/session"
	"go.uber.org/zap"
)

const (
	ReaderActorName = "shell_reader"
	WorkerActorName = "shell_worker"
)

var helpText = heredoc.Doc(`
	place <gate> <qubit> <column> [angle]   put a gate, replacing the occupant
	remove <qubit> <column>                 remove a gate
	move <qubit> <column> <qubit> <column>  move a gate
	angle <qubit> <column> <angle>          set the angle of RX, RY or RZ
	qubits <n> | addqubit | removequbit     resize the register
	clear | undo | redo
	show                                    draw the circuit
	targets                                 list export targets
	target [name]                           show or select the export target
	code [target]                           print generated code
	export <path> [target]                  write generated code to a file
	language [name]                         show or select the source language
	import <path> [language]                replace the circuit with a source file
	simulate                                run the simulator
	save <name> | load <id> | list | delete <id>
	user [id] | status | stats | help | quit
`)

// EventRecorder receives export, import and simulation events.
type EventRecorder interface {
	Event(name string, args ...any)
}

type Shell struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	events  EventRecorder
	fifo    fifo
}

func New(s *session.Session, in io.Reader, out io.Writer, events EventRecorder) *Shell {
	return &Shell{
		session: s,
		in:      in,
		out:     out,
		events:  events,
		fifo:    newConqFIFO(),
	}
}

// QueueLength is the number of commands waiting for the worker.
func (sh *Shell) QueueLength() int {
	return sh.fifo.GetLen()
}

func (sh *Shell) event(name string, args ...any) {
	if sh.events != nil {
		sh.events.Event(name, args...)
	}
}

// Submit parses line and queues it. It reports whether anything was queued.
func (sh *Shell) Submit(line string) (bool, error) {
	cmd := parse(line)
	if cmd == nil {
		return false, nil
	}
	return true, sh.fifo.Enqueue(cmd)
}

// Register adds the reader and the worker to the run group. The worker stops
// after a quit command or when the group is interrupted; end of input queues
// a quit.
func (sh *Shell) Register(rc *core.RunContext) {
	ctx, cancel := context.WithCancel(rc.Context)

	lines := make(chan string)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		scanner := bufio.NewScanner(sh.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			zap.L().Warn(fmt.Sprintf("[Shell] stopped reading/reason:%s", err))
		}
	}()

	rc.AddActor(ReaderActorName, func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case line := <-lines:
				if _, err := sh.Submit(line); err != nil {
					zap.L().Error(fmt.Sprintf("[Shell] failed to queue %q/reason:%s", line, err))
				}
			case <-readerDone:
				if err := sh.fifo.Enqueue(&command{name: "quit", quit: true}); err != nil {
					return err
				}
				<-ctx.Done()
				return nil
			}
		}
	}, cancel)

	rc.AddActor(WorkerActorName, func() error {
		return sh.work(ctx)
	}, func() {
		cancel()
		// wakes a worker blocked on an empty queue
		_ = sh.fifo.Enqueue(&command{name: "quit", quit: true})
	})
}

func (sh *Shell) work(ctx context.Context) error {
	for {
		cmd, err := sh.fifo.DequeueOrWaitForNextElement()
		if err != nil {
			return err
		}
		if cmd.quit || ctx.Err() != nil {
			zap.L().Debug("[Shell] worker stopped")
			return nil
		}
		sh.print(sh.execute(ctx, cmd))
	}
}

func (sh *Shell) print(out string, err error) {
	if err != nil {
		fmt.Fprintln(sh.out, render.Notice(session.NoticeFor(err)))
		return
	}
	if out != "" {
		fmt.Fprintln(sh.out, strings.TrimRight(out, "\n"))
	}
}

// ExecuteLine runs one line synchronously.
func (sh *Shell) ExecuteLine(ctx context.Context, line string) (string, error) {
	cmd := parse(line)
	if cmd == nil || cmd.quit {
		return "", nil
	}
	return sh.execute(ctx, cmd)
}

func (sh *Shell) notice() string {
	return render.Notice(sh.session.Status())
}

// execute runs cmd against the session and returns what to print.
func (sh *Shell) execute(ctx context.Context, cmd *command) (string, error) {
	s := sh.session
	zap.L().Debug(fmt.Sprintf("[Shell] %s %v", cmd.name, cmd.args))
	switch cmd.name {
	case "help":
		return helpText, nil

	case "place":
		if err := cmd.arity(3, 4); err != nil {
			return "", err
		}
		kind, err := circuit.ParseGateKind(cmd.args[0])
		if err != nil {
			return "", err
		}
		pos, err := cmd.ints(1, 2)
		if err != nil {
			return "", err
		}
		var angle *float64
		if len(cmd.args) == 4 {
			a, err := importer.ParseAngle(cmd.args[3])
			if err != nil {
				return "", err
			}
			angle = circuit.Angle(a)
		}
		if err := s.Place(kind, pos[0], pos[1], angle); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "remove":
		if err := cmd.arity(2, 2); err != nil {
			return "", err
		}
		pos, err := cmd.ints(0, 2)
		if err != nil {
			return "", err
		}
		if err := s.Remove(pos[0], pos[1]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "move":
		if err := cmd.arity(4, 4); err != nil {
			return "", err
		}
		pos, err := cmd.ints(0, 4)
		if err != nil {
			return "", err
		}
		if err := s.Move(pos[0], pos[1], pos[2], pos[3]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "angle":
		if err := cmd.arity(3, 3); err != nil {
			return "", err
		}
		pos, err := cmd.ints(0, 2)
		if err != nil {
			return "", err
		}
		a, err := importer.ParseAngle(cmd.args[2])
		if err != nil {
			return "", err
		}
		if err := s.SetAngle(pos[0], pos[1], a); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "qubits":
		if err := cmd.arity(1, 1); err != nil {
			return "", err
		}
		n, err := cmd.ints(0, 1)
		if err != nil {
			return "", err
		}
		if err := s.SetQubitCount(n[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "addqubit", "removequbit", "clear", "undo", "redo":
		ops := map[string]func() error{
			"addqubit":    s.AddQubit,
			"removequbit": s.RemoveQubit,
			"clear":       s.Clear,
			"undo":        s.Undo,
			"redo":        s.Redo,
		}
		if err := ops[cmd.name](); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "show":
		return render.Grid(s.Circuit()), nil

	case "targets":
		var sb strings.Builder
		for _, t := range codegen.Targets() {
			fmt.Fprintf(&sb, "%-10s %-6s %s\n", t, t.Extension(), t.Description())
		}
		return sb.String(), nil

	case "target":
		if len(cmd.args) == 0 {
			return string(s.Target()), nil
		}
		if err := s.SetTarget(cmd.args[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "code":
		t := s.Target()
		if len(cmd.args) > 0 {
			var err error
			if t, err = codegen.ParseTarget(cmd.args[0]); err != nil {
				return "", err
			}
		}
		code, err := s.Code(t)
		if err != nil {
			return "", err
		}
		sh.event("export", "target", string(t))
		return code, nil

	case "export":
		if err := cmd.arity(1, 2); err != nil {
			return "", err
		}
		t := s.Target()
		if len(cmd.args) == 2 {
			var err error
			if t, err = codegen.ParseTarget(cmd.args[1]); err != nil {
				return "", err
			}
		}
		code, err := s.Code(t)
		if err != nil {
			return "", err
		}
		path := cmd.args[0]
		if filepath.Ext(path) == "" {
			path = codegen.FileName(path, t)
		}
		if err := common.WriteFile(path, code); err != nil {
			return "", err
		}
		sh.event("export", "target", string(t), "path", path)
		return fmt.Sprintf("wrote %s", path), nil

	case "language":
		if len(cmd.args) == 0 {
			return string(s.SourceLanguage()), nil
		}
		if err := s.SetSourceLanguage(cmd.args[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "import":
		if err := cmd.arity(1, 2); err != nil {
			return "", err
		}
		var lang importer.Language
		if len(cmd.args) == 2 {
			var err error
			if lang, err = importer.ParseLanguage(cmd.args[1]); err != nil {
				return "", err
			}
		}
		src, err := common.ReadFile(cmd.args[0])
		if err != nil {
			return "", err
		}
		res, err := s.Import(src, lang)
		if err != nil {
			return "", err
		}
		sh.event("import", "language", string(res.Language), "gates", len(res.Placements))
		return sh.notice(), nil

	case "simulate":
		r, err := s.Simulate(ctx)
		if err != nil {
			return "", err
		}
		sh.event("simulate", "qubits", len(r.BlochVectors))
		return render.Result(r), nil

	case "save":
		if err := cmd.arity(1, 1); err != nil {
			return "", err
		}
		if _, err := s.Save(ctx, cmd.args[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "load":
		if err := cmd.arity(1, 1); err != nil {
			return "", err
		}
		if _, err := s.Load(ctx, cmd.args[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "list":
		docs, err := s.List(ctx)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, d := range docs {
			fmt.Fprintf(&sb, "%s  %-16s %-9s %d qubits %d gates  %s\n",
				d.ID, d.Name, d.Language, d.QubitCount, d.Info.GateCount, d.CreatedAt)
		}
		return sb.String(), nil

	case "delete":
		if err := cmd.arity(1, 1); err != nil {
			return "", err
		}
		if err := s.Delete(ctx, cmd.args[0]); err != nil {
			return "", err
		}
		return sh.notice(), nil

	case "user":
		if len(cmd.args) > 0 {
			s.SetCurrentUser(cmd.args[0])
		}
		return s.CurrentUser(), nil

	case "status":
		return sh.notice(), nil

	case "stats":
		st := s.Stats()
		return fmt.Sprintf("edits:%d exports:%d imports:%d simulations:%d saves:%d loads:%d queued:%d",
			st.Edits, st.Exports, st.Imports, st.Simulations, st.Saves, st.Loads, sh.QueueLength()), nil

	default:
		return "", errors.Errorf("%s is an unknown command, try help", cmd.name)
	}
}

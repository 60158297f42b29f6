package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	jsoniter "github.com/json-iterator/go"
	"github.com/massn/envordot"

	"github.com/qcanvas-team/qcanvas-engine/core"
	"github.com/qcanvas-team/qcanvas-engine/db"
	"github.com/qcanvas-team/qcanvas-engine/simulator"

	"go.uber.org/dig"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

var versionByBuildFlag string
var parser *flags.Parser
var app *App

func init() {
	if err := envordot.Load(false, ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Not found \".env\" file. Use only environment variables. Reason:%s\n", err.Error())
	}
	app = &App{}
	setParser(app)
}

type App struct {
	DIContainerParameters *DIContainerParameters
	Conf                  *core.Conf
}

type DIContainerParameters struct {
	Store     string `long:"store" description:"circuit store" default:"sqlite" choice:"memory" choice:"sqlite" env:"QCANVAS_STORE_TYPE"`
	Simulator string `long:"simulator" description:"simulator type" default:"random" choice:"random" choice:"statevector" env:"QCANVAS_SIMULATOR_TYPE"`
}

func setParser(a *App) {
	parser = flags.NewParser(a, flags.Default)
	parser.ShortDescription = "qcanvas"
	parser.LongDescription = "build, translate, simulate and store small quantum circuits."
	parser.AddCommand("export", "generate code", "generate code for a target from a source file or a saved circuit", &exportCmd{})
	parser.AddCommand("import", "recover a circuit", "recover the gate grid from a source file", &importCmd{})
	parser.AddCommand("simulate", "simulate a circuit", "simulate a source file or a saved circuit", &simulateCmd{})
	parser.AddCommand("save", "save a circuit", "import a source file and save it", &saveCmd{})
	parser.AddCommand("load", "show a saved circuit", "show a saved circuit and its code", &loadCmd{})
	parser.AddCommand("list", "list saved circuits", "list the saved circuits of an owner", &listCmd{})
	parser.AddCommand("delete", "delete a saved circuit", "delete a saved circuit", &deleteCmd{})
	parser.AddCommand("targets", "list export targets", "list export targets and their file extensions", &targetsCmd{})
	parser.AddCommand("info", "show configuration", "show version, configuration and setting", &infoCmd{})
	parser.AddCommand("shell", "start the interactive shell", "edit a circuit line by line", &shellCmd{})
}

func parse() {
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok {
			if fe.Type == flags.ErrHelp {
				code = 0
			}
		}
		if code == 1 {
			fmt.Fprintf(os.Stderr, "failed to run, because %s\n", err)
		}
		os.Exit(code)
	}
}

func (a *App) provideDIContainer() (c *dig.Container, err error) {
	c = dig.New()
	err = c.Provide(func() (core.Simulator, error) {
		return simulator.New(a.DIContainerParameters.Simulator)
	})
	if err != nil {
		return &dig.Container{}, err
	}
	err = c.Provide(func() (core.CircuitStore, error) {
		switch a.DIContainerParameters.Store {
		case "memory":
			return &core.MemoryStore{}, nil
		case "sqlite":
			return &db.SQLiteStore{}, nil
		default:
			return &core.MemoryStore{}, fmt.Errorf("%s is an unknown store", a.DIContainerParameters.Store)
		}
	})
	if err != nil {
		return &dig.Container{}, err
	}
	return
}

func main() {
	parse()
}

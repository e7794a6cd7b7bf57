// Program nodewire is a small exploration tool for the nodewire data
// plane. It runs an in-process emulator over a node registry loaded
// from a JSON file (or a built-in demo registry) and exposes get, set,
// list and watch operations against it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/halverson/nodewire"
	"github.com/halverson/nodewire/emulator"
	"github.com/kr/pretty"
)

var globalArgs struct {
	NodesFile string `flag:"nodes,Path to a JSON file mapping node paths to their metadata"`
}

var watchArgs struct {
	Ramp time.Duration `flag:"ramp,default=0,Feed the watched node an incrementing value at this interval"`
}

func main() {
	root := &command.C{
		Name:     "nodewire",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "ls",
				Usage: "ls [expression]",
				Help: `List node paths.

With no argument, lists every path in the registry. With a path
expression, lists the paths it matches: an expression addresses itself
and everything below it, and a "*" segment matches any single segment.`,
				Run: runLs,
			},
			{
				Name:  "info",
				Usage: "info [expression]",
				Help:  "Show the declared metadata of the matched nodes.",
				Run:   runInfo,
			},
			{
				Name:  "get",
				Usage: "get expression",
				Help:  "Read the current value of the matched nodes.",
				Run:   command.Adapt(runGet),
			},
			{
				Name:  "set",
				Usage: "set expression value",
				Help: `Write a value to the matched nodes.

The value is parsed as an integer, then a float, and otherwise taken
as a string.`,
				Run: command.Adapt(runSet),
			},
			{
				Name:     "watch",
				Usage:    "watch path",
				Help:     "Subscribe to a node and print every update.",
				SetFlags: command.Flags(flax.MustBind, &watchArgs),
				Run:      command.Adapt(runWatch),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

// demoRegistry is used when no --nodes file is given.
var demoRegistry = map[nodewire.NodePath]nodewire.NodeInfo{
	"/dev1234/demods/0/rate": {
		Description: "Demodulator sample rate",
		Properties:  nodewire.PropRead | nodewire.PropWrite | nodewire.PropSetting,
		Type:        "Double",
		Unit:        "Hz",
	},
	"/dev1234/demods/0/enable": {
		Description: "Demodulator enable",
		Properties:  nodewire.PropRead | nodewire.PropWrite | nodewire.PropSetting,
		Type:        "Integer (64 bit)",
		Options: map[int64]nodewire.OptionInfo{
			0: {Enum: "off", Description: "Demodulator disabled"},
			1: {Enum: "on", Description: "Demodulator enabled"},
		},
	},
	"/dev1234/demods/1/rate": {
		Description: "Demodulator sample rate",
		Properties:  nodewire.PropRead | nodewire.PropWrite | nodewire.PropSetting,
		Type:        "Double",
		Unit:        "Hz",
	},
	"/dev1234/oscs/0/freq": {
		Description: "Oscillator frequency",
		Properties:  nodewire.PropRead | nodewire.PropWrite | nodewire.PropSetting,
		Type:        "Double",
		Unit:        "Hz",
	},
	"/dev1234/features/serial": {
		Description: "Device serial number",
		Properties:  nodewire.PropRead,
		Type:        "String",
	},
}

func newEmulator() (*emulator.Emulator, error) {
	info := demoRegistry
	if globalArgs.NodesFile != "" {
		bs, err := os.ReadFile(globalArgs.NodesFile)
		if err != nil {
			return nil, fmt.Errorf("reading node registry: %w", err)
		}
		info = make(map[nodewire.NodePath]nodewire.NodeInfo)
		if err := json.Unmarshal(bs, &info); err != nil {
			return nil, fmt.Errorf("parsing node registry %s: %w", globalArgs.NodesFile, err)
		}
	}
	return emulator.New(nodewire.NewRegistry(info), nil), nil
}

func runLs(env *command.Env) error {
	em, err := newEmulator()
	if err != nil {
		return err
	}
	expr := nodewire.NodePath("")
	if len(env.Args) > 0 {
		expr = nodewire.NodePath(env.Args[0])
	}
	for _, p := range em.ListNodes(expr) {
		fmt.Println(p)
	}
	return nil
}

func runInfo(env *command.Env) error {
	em, err := newEmulator()
	if err != nil {
		return err
	}
	expr := nodewire.NodePath("")
	if len(env.Args) > 0 {
		expr = nodewire.NodePath(env.Args[0])
	}
	infos := em.ListNodesInfo(expr)
	for _, p := range em.ListNodes(expr) {
		fmt.Printf("%s: %# v\n", p, pretty.Formatter(infos[p]))
	}
	return nil
}

func runGet(env *command.Env, expr string) error {
	em, err := newEmulator()
	if err != nil {
		return err
	}
	avs, err := em.GetWithExpression(nodewire.NodePath(expr))
	if err != nil {
		return err
	}
	if len(avs) == 0 {
		return fmt.Errorf("no node matches %q", expr)
	}
	for _, av := range avs {
		printValue(av)
	}
	return nil
}

func runSet(env *command.Env, expr, raw string) error {
	em, err := newEmulator()
	if err != nil {
		return err
	}
	acks, err := em.SetWithExpression(nodewire.AnnotatedValue{
		Value: parseValue(raw),
		Path:  nodewire.NodePath(expr),
	})
	if err != nil {
		return err
	}
	if len(acks) == 0 {
		return fmt.Errorf("no node matches %q", expr)
	}
	for _, av := range acks {
		printValue(av)
	}
	return nil
}

func runWatch(env *command.Env, path string) error {
	em, err := newEmulator()
	if err != nil {
		return err
	}
	q := emulator.NewQueue()
	defer q.Close()
	if err := em.Subscribe(nodewire.NodePath(path), q); err != nil {
		return err
	}

	if watchArgs.Ramp > 0 {
		go func() {
			tick := time.NewTicker(watchArgs.Ramp)
			defer tick.Stop()
			var n int64
			for {
				select {
				case <-env.Context().Done():
					return
				case <-tick.C:
					n++
					em.Set(nodewire.AnnotatedValue{
						Value: nodewire.Int64(n),
						Path:  nodewire.NodePath(path),
					})
				}
			}
		}()
	}

	fmt.Printf("Watching %s...\n", path)
	for {
		select {
		case <-env.Context().Done():
			return nil
		case up := <-q.Chan():
			printValue(up.AnnotatedValue)
			if up.Overflow {
				fmt.Println("OVERFLOW, some updates lost")
			}
		}
	}
}

func parseValue(raw string) nodewire.Value {
	if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return nodewire.Int64(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return nodewire.Float64(f)
	}
	return nodewire.Text(raw)
}

func printValue(av nodewire.AnnotatedValue) {
	var ts string
	if t, ok := av.Timestamp.GetOK(); ok {
		ts = fmt.Sprintf(" @%d", t)
	}
	var out strings.Builder
	fmt.Fprintf(&out, "%s%s: %# v", av.Path, ts, pretty.Formatter(av.Value))
	fmt.Println(out.String())
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/daviddao/maelstrom-echo/pkg/debuglog"
	"github.com/daviddao/maelstrom-echo/pkg/node"
	"github.com/daviddao/maelstrom-echo/pkg/store"
	"github.com/daviddao/maelstrom-echo/pkg/transport"
)

// app holds the process streams and the environment defaults shared by
// all subcommands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	values  string
	lenient bool
	debug   bool
}

func newApp() *app {
	return &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		values:  envOr("MAELSTROM_ECHO_VALUES", store.BackendMemory),
		lenient: envBool("MAELSTROM_ECHO_LENIENT"),
		debug:   envBool("MAELSTROM_ECHO_DEBUG"),
	}
}

// options are the per-invocation settings after flags override the
// environment.
type options struct {
	values  string
	lenient bool
	debug   bool
}

// flagSet returns a FlagSet for name with the shared node flags bound to o,
// defaulted from the environment.
func (a *app) flagSet(name string, o *options) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	flags.StringVar(&o.values, "values", a.values, "value log backend: memory or sqlite")
	flags.BoolVar(&o.lenient, "lenient", a.lenient, "skip undecodable lines instead of exiting")
	flags.BoolVar(&o.debug, "debug", a.debug, "trace every line on stderr")
	return flags
}

// serve runs a fresh node over r and w until r is exhausted.
func (a *app) serve(r io.Reader, w io.Writer, o options) error {
	debuglog.SetDebug(o.debug)

	values, err := store.Open(o.values)
	if err != nil {
		return err
	}
	defer values.Close()

	n := node.New(
		node.WithValueLog(values),
		node.WithLogf(debuglog.Debugf),
	)
	loop := &transport.Loop{
		Handler: n,
		Lenient: o.lenient,
		Logf:    debuglog.Logf,
		Debugf:  debuglog.Debugf,
	}
	debuglog.Debugf("node started: values=%s lenient=%t", o.values, o.lenient)
	if err := loop.Run(r, w); err != nil {
		return err
	}
	if self, ok := n.ID(); ok {
		debuglog.Debugf("input closed: node %s sent %d messages", self, n.Counter())
	}
	return nil
}

func (a *app) fail(format string, args ...any) int {
	fmt.Fprintf(a.stderr, "maelstrom-echo: "+format+"\n", args...)
	return 1
}

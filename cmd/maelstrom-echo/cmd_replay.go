package main

import "os"

// cmdReplay runs a recorded transcript through a fresh node, printing what
// the node would have sent. Each line of the file is handled as if it had
// arrived on stdin.
func (a *app) cmdReplay(args []string) int {
	var o options
	flags := a.flagSet("replay", &o)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		return a.fail("usage: maelstrom-echo replay [--values B] [--lenient] [--debug] <file>")
	}

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		return a.fail("replay: %v", err)
	}
	defer f.Close()

	if err := a.serve(f, a.stdout, o); err != nil {
		return a.fail("replay %s: %v", flags.Arg(0), err)
	}
	return 0
}

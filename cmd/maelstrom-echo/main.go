// Command maelstrom-echo is a single harness node speaking the
// newline-delimited JSON protocol on stdin/stdout. It serves the echo,
// unique-id and broadcast workloads.
package main

import (
	"fmt"
	"os"
)

const version = "1.0.0"

func main() {
	a := newApp()

	// The harness starts nodes without arguments.
	if len(os.Args) < 2 {
		os.Exit(a.cmdRun(nil))
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		printUsage()
		return
	case "--version", "-v", "version":
		fmt.Println("maelstrom-echo", version)
		return
	case "run":
		os.Exit(a.cmdRun(os.Args[2:]))
	case "replay":
		os.Exit(a.cmdReplay(os.Args[2:]))
	default:
		// Flags without a subcommand belong to run.
		if len(os.Args[1]) > 0 && os.Args[1][0] == '-' {
			os.Exit(a.cmdRun(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "maelstrom-echo: unknown command %q\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Run 'maelstrom-echo --help' for usage.")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`maelstrom-echo: a harness node for the echo, unique-id and broadcast workloads

Reads one JSON envelope per line on stdin, writes replies one per line on
stdout. Diagnostics go to stderr.

Usage:
  maelstrom-echo [run] [flags]      Serve stdin -> stdout (default)
  maelstrom-echo replay <file>      Feed a recorded transcript through a fresh node

Flags (run, replay):
  --values memory|sqlite    Backend for recorded broadcast values
  --lenient                 Skip undecodable lines instead of exiting
  --debug                   Trace every line in and out on stderr

Environment:
  MAELSTROM_ECHO_VALUES     Default for --values (memory)
  MAELSTROM_ECHO_LENIENT    Set to 1 to default --lenient on
  MAELSTROM_ECHO_DEBUG      Set to 1 to default --debug on

Exit codes:
  0  input ended
  1  error
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool { return os.Getenv(key) == "1" }

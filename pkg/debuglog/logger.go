// Package debuglog writes process diagnostics to stderr.
//
// stdout belongs to the wire protocol, so nothing here ever writes there.
// Logf always writes; Debugf only when debug output is on, either through
// MAELSTROM_ECHO_DEBUG=1 or SetDebug. Every line carries a short session
// tag so the stderr of several node processes can be told apart.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

const envDebug = "MAELSTROM_ECHO_DEBUG"

type logger struct {
	mu      sync.Mutex
	out     io.Writer
	debug   bool
	session string
	info    *color.Color
	dbg     *color.Color
}

var global = newLogger(os.Stderr, os.Getenv(envDebug) == "1")

func newLogger(out io.Writer, debug bool) *logger {
	l := &logger{
		out:     out,
		debug:   debug,
		session: uuid.NewString()[:8],
		info:    color.New(color.FgCyan),
		dbg:     color.New(color.FgYellow),
	}
	l.setColor(out)
	return l
}

// setColor enables colour only when out is a terminal.
func (l *logger) setColor(out io.Writer) {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if tty && os.Getenv("NO_COLOR") == "" {
		l.info.EnableColor()
		l.dbg.EnableColor()
	} else {
		l.info.DisableColor()
		l.dbg.DisableColor()
	}
}

func (l *logger) write(label *color.Color, level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "%s %s %s\n", label.Sprint(level), l.session, msg)
}

// Logf writes one diagnostic line.
func Logf(format string, args ...any) {
	global.write(global.info, "info ", format, args...)
}

// Debugf writes one diagnostic line when debug output is on.
func Debugf(format string, args ...any) {
	if !Enabled() {
		return
	}
	global.write(global.dbg, "debug", format, args...)
}

// Enabled reports whether Debugf writes anything.
func Enabled() bool {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.debug
}

// SetDebug turns debug output on or off, overriding the environment.
func SetDebug(on bool) {
	global.mu.Lock()
	global.debug = on
	global.mu.Unlock()
}

// SetOutput redirects diagnostics, mainly for tests. It returns the
// previous writer.
func SetOutput(w io.Writer) io.Writer {
	global.mu.Lock()
	defer global.mu.Unlock()
	prev := global.out
	global.out = w
	global.setColor(w)
	return prev
}

// Session returns the tag this process prefixes its lines with.
func Session() string { return global.session }

// Package transport connects a node to a line-oriented stream: one JSON
// envelope per input line in, one JSON envelope per output line out.
package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/daviddao/maelstrom-echo/pkg/message"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// ErrBadLine marks an input line that could not be decoded.
var ErrBadLine = errors.New("bad input line")

// Handler is the node side of the loop.
type Handler interface {
	Handle(message.Envelope) ([]message.Envelope, error)
}

// Loop feeds decoded lines to a Handler and writes back what it produces.
type Loop struct {
	Handler Handler

	// Lenient skips lines that fail to decode instead of stopping.
	Lenient bool

	// Logf reports skipped lines. Debugf traces every line in and out.
	// Both may be nil.
	Logf   func(format string, args ...any)
	Debugf func(format string, args ...any)
}

// Run processes r until EOF. Output for one input line is written and
// flushed before the next line is read. It returns nil at EOF.
func (l *Loop) Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	bw := bufio.NewWriter(w)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		l.debugf("recv %s", line)

		env, err := message.Decode(line)
		if err != nil {
			err = fmt.Errorf("%w %d: %w", ErrBadLine, lineNo, err)
			if !l.Lenient {
				return err
			}
			l.logf("skipping %v", err)
			continue
		}

		out, err := l.Handler.Handle(env)
		if err != nil {
			return fmt.Errorf("line %d: handle %s: %w", lineNo, env.Body.Type(), err)
		}
		if err := l.emit(bw, out); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	return nil
}

func (l *Loop) emit(bw *bufio.Writer, out []message.Envelope) error {
	for _, env := range out {
		b, err := message.Encode(env)
		if err != nil {
			return fmt.Errorf("encode envelope for %s: %w", env.Dest, err)
		}
		l.debugf("send %s", b)
		if _, err := bw.Write(b); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (l *Loop) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
	}
}

func (l *Loop) debugf(format string, args ...any) {
	if l.Debugf != nil {
		l.Debugf(format, args...)
	}
}

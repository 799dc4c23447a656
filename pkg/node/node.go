// Package node implements the harness node state machine.
//
// A Node starts uninitialized. The first init envelope fixes its own id
// and its peers, and that transition is never undone. After that the node
// answers echo, generate, read, topology and broadcast requests. A
// broadcast from a client is recorded and re-sent once to every peer; a
// broadcast from another node is only recorded, so values travel at most
// one hop.
//
// Handle is synchronous and a Node is not goroutine-safe: the transport
// feeds it one envelope at a time.
package node

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"slices"

	"github.com/daviddao/maelstrom-echo/pkg/id"
	"github.com/daviddao/maelstrom-echo/pkg/message"
	"github.com/daviddao/maelstrom-echo/pkg/seq"
	"github.com/daviddao/maelstrom-echo/pkg/store"
)

var (
	errNotInitialized = errors.New("node not initialized")
	errUnhandled      = errors.New("unhandled body type")
	errMissingField   = errors.New("missing required field")
)

// Node is the state of one harness node.
type Node struct {
	self    id.ID
	active  bool
	counter seq.Counter
	peers   []id.ID
	values  store.ValueLog
	random  io.Reader
	logf    func(format string, args ...any)
}

// Option configures a Node.
type Option func(*Node)

// WithValueLog sets the backend for recorded broadcast values. The default
// is store.Memory.
func WithValueLog(l store.ValueLog) Option {
	return func(n *Node) { n.values = l }
}

// WithRandom sets the entropy source generate draws from. The default is
// crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(n *Node) { n.random = r }
}

// WithLogf sets where the node reports requests it answers with an error.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(n *Node) { n.logf = logf }
}

// New returns an uninitialized node.
func New(opts ...Option) *Node {
	n := &Node{
		values: store.NewMemory(),
		random: rand.Reader,
		logf:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ID returns the node's own id and whether init has happened.
func (n *Node) ID() (id.ID, bool) { return n.self, n.active }

// Initialized reports whether the node has handled an init.
func (n *Node) Initialized() bool { return n.active }

// Peers returns the other nodes of the cluster in registration order.
func (n *Node) Peers() []id.ID { return slices.Clone(n.peers) }

// Counter returns the last msg_id handed out.
func (n *Node) Counter() uint64 { return n.counter.Value() }

// Values returns every recorded broadcast value in arrival order.
func (n *Node) Values() ([]uint32, error) { return n.values.Values() }

// Handle processes one incoming envelope and returns the envelopes to
// send, in order. Protocol problems become error replies; the returned
// error is reserved for value log failures.
func (n *Node) Handle(env message.Envelope) ([]message.Envelope, error) {
	var (
		out []message.Envelope
		err error
	)
	switch body := env.Body.(type) {
	case *message.Init:
		out, err = n.handleInit(env, body)
	case *message.Echo:
		out, err = n.handleEcho(env, body)
	case *message.Generate:
		out, err = n.handleGenerate(env)
	case *message.Read:
		out, err = n.handleRead(env)
	case *message.Broadcast:
		out, err = n.handleBroadcast(env, body)
	case *message.Topology:
		out, err = n.handleTopology(env)
	case *message.BroadcastOK:
		return nil, nil
	default:
		err = fmt.Errorf("%w: %s", errUnhandled, typeOf(env.Body))
	}
	if err != nil {
		if !isProtocolErr(err) {
			return nil, err
		}
		n.logf("%s from %s: %v", typeOf(env.Body), env.Src, err)
		return []message.Envelope{n.errorReply(env)}, nil
	}
	return out, nil
}

func isProtocolErr(err error) bool {
	return errors.Is(err, errNotInitialized) ||
		errors.Is(err, errUnhandled) ||
		errors.Is(err, errMissingField)
}

func typeOf(b message.Body) message.Type {
	if b == nil {
		return "<nil>"
	}
	return b.Type()
}

// source is the src of a reply: our own id, or the id the request was
// addressed to before init.
func (n *Node) source(req message.Envelope) id.ID {
	if n.active {
		return n.self
	}
	return req.Dest
}

// reply addresses body back to the sender of req, stamping a fresh msg_id
// and in_reply_to.
func (n *Node) reply(req message.Envelope, body message.Body) message.Envelope {
	h := message.HeaderOf(body)
	h.MsgID = n.counter.Next()
	h.InReplyTo = message.HeaderOf(req.Body).MsgID
	return message.Envelope{Src: n.source(req), Dest: req.Src, Body: body}
}

// errorReply is the fallback reply for anything the node cannot serve.
// The counter advances twice here, so the msg_id of an error reply skips
// one value.
func (n *Node) errorReply(req message.Envelope) message.Envelope {
	n.counter.Tick()
	var inReplyTo *uint64
	if req.Body != nil {
		inReplyTo = message.HeaderOf(req.Body).MsgID
	}
	return message.Envelope{
		Src:  n.source(req),
		Dest: req.Src,
		Body: &message.Error{
			Header: message.Header{MsgID: n.counter.Next(), InReplyTo: inReplyTo},
			Code:   message.CodeCrash,
		},
	}
}

func (n *Node) requireInit() error {
	if !n.active {
		return errNotInitialized
	}
	return nil
}

// random128 draws 16 bytes and reads them as a big-endian unsigned integer.
func (n *Node) random128() (string, error) {
	var b [16]byte
	if _, err := io.ReadFull(n.random, b[:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return new(big.Int).SetBytes(b[:]).String(), nil
}

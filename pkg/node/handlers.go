package node

import (
	"fmt"

	"github.com/daviddao/maelstrom-echo/pkg/id"
	"github.com/daviddao/maelstrom-echo/pkg/message"
)

// handleInit adopts the destination as our own id and every other listed
// node as a peer. A repeated init is answered the same way but leaves the
// state from the first one in place.
func (n *Node) handleInit(env message.Envelope, body *message.Init) ([]message.Envelope, error) {
	if body.NodeIDs == nil {
		return nil, fmt.Errorf("%w: init.node_ids", errMissingField)
	}
	if !n.active {
		n.self = env.Dest
		n.peers = id.Without(body.NodeIDs, env.Dest)
		n.active = true
	}
	return []message.Envelope{n.reply(env, &message.InitOK{})}, nil
}

func (n *Node) handleEcho(env message.Envelope, body *message.Echo) ([]message.Envelope, error) {
	if err := n.requireInit(); err != nil {
		return nil, err
	}
	return []message.Envelope{n.reply(env, &message.EchoOK{Echo: body.Echo})}, nil
}

func (n *Node) handleGenerate(env message.Envelope) ([]message.Envelope, error) {
	if err := n.requireInit(); err != nil {
		return nil, err
	}
	uid, err := n.random128()
	if err != nil {
		return nil, err
	}
	return []message.Envelope{n.reply(env, &message.GenerateOK{ID: uid})}, nil
}

func (n *Node) handleRead(env message.Envelope) ([]message.Envelope, error) {
	if err := n.requireInit(); err != nil {
		return nil, err
	}
	values, err := n.values.Values()
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	return []message.Envelope{n.reply(env, &message.ReadOK{Messages: values})}, nil
}

// handleBroadcast records the value and, when a client sent it, forwards
// it once to each peer. Forwards come first, then the broadcast_ok.
// Forwards are fire-and-forget: nothing waits for their broadcast_ok.
func (n *Node) handleBroadcast(env message.Envelope, body *message.Broadcast) ([]message.Envelope, error) {
	if err := n.requireInit(); err != nil {
		return nil, err
	}
	if body.Message == nil {
		return nil, fmt.Errorf("%w: broadcast.message", errMissingField)
	}
	v := *body.Message
	if err := n.values.Append(v); err != nil {
		return nil, fmt.Errorf("record value: %w", err)
	}

	var out []message.Envelope
	if env.Src.IsClient() {
		out = make([]message.Envelope, 0, len(n.peers)+1)
		for _, peer := range n.peers {
			out = append(out, message.Envelope{
				Src:  n.self,
				Dest: peer,
				Body: &message.Broadcast{
					Header:  message.Header{MsgID: n.counter.Next()},
					Message: &v,
				},
			})
		}
	}
	return append(out, n.reply(env, &message.BroadcastOK{})), nil
}

// handleTopology acknowledges the topology without using it: peers come
// from init.
func (n *Node) handleTopology(env message.Envelope) ([]message.Envelope, error) {
	if err := n.requireInit(); err != nil {
		return nil, err
	}
	return []message.Envelope{n.reply(env, &message.TopologyOK{})}, nil
}

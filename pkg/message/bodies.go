package message

import "github.com/daviddao/maelstrom-echo/pkg/id"

// Error codes defined by the harness. Codes below 1000 are reserved.
const (
	CodeTimeout                = 0
	CodeNodeNotFound           = 1
	CodeNotSupported           = 10
	CodeTemporarilyUnavailable = 11
	CodeMalformedRequest       = 12
	CodeCrash                  = 13
	CodeAbort                  = 14
	CodeKeyDoesNotExist        = 20
	CodeKeyAlreadyExists       = 21
	CodePreconditionFailed     = 22
	CodeTxnConflict            = 30
)

// Init tells a node its own id and the cluster roster.
type Init struct {
	Header
	NodeID  *id.ID  `json:"node_id,omitempty"`
	NodeIDs []id.ID `json:"node_ids,omitempty"`
}

// InitOK acknowledges an Init.
type InitOK struct{ Header }

// Echo asks the node to send its payload back unchanged.
type Echo struct {
	Header
	Echo *string `json:"echo,omitempty"`
}

// EchoOK returns the payload of an Echo.
type EchoOK struct {
	Header
	Echo *string `json:"echo,omitempty"`
}

// Generate asks the node for a unique id.
type Generate struct{ Header }

// GenerateOK carries a freshly generated unique id as a decimal string.
type GenerateOK struct {
	Header
	ID string `json:"id"`
}

// Broadcast carries one value to record and propagate. Message is nil when
// the sender left it out.
type Broadcast struct {
	Header
	Message *uint32 `json:"message,omitempty"`
}

// BroadcastOK acknowledges a Broadcast.
type BroadcastOK struct{ Header }

// Read asks the node for every value it has recorded.
type Read struct{ Header }

// ReadOK lists every value the node has recorded, in arrival order.
type ReadOK struct {
	Header
	Messages []uint32 `json:"messages"`
}

// Topology maps each node to its neighbours.
type Topology struct {
	Header
	Topology map[id.ID][]id.ID `json:"topology,omitempty"`
}

// TopologyOK acknowledges a Topology.
type TopologyOK struct{ Header }

// Error reports a failed request. Code and Text are always on the wire.
type Error struct {
	Header
	Code int    `json:"code"`
	Text string `json:"text"`
}

func (*Init) Type() Type        { return TypeInit }
func (*InitOK) Type() Type      { return TypeInitOK }
func (*Echo) Type() Type        { return TypeEcho }
func (*EchoOK) Type() Type      { return TypeEchoOK }
func (*Generate) Type() Type    { return TypeGenerate }
func (*GenerateOK) Type() Type  { return TypeGenerateOK }
func (*Broadcast) Type() Type   { return TypeBroadcast }
func (*BroadcastOK) Type() Type { return TypeBroadcastOK }
func (*Read) Type() Type        { return TypeRead }
func (*ReadOK) Type() Type      { return TypeReadOK }
func (*Topology) Type() Type    { return TypeTopology }
func (*TopologyOK) Type() Type  { return TypeTopologyOK }
func (*Error) Type() Type       { return TypeError }

// New returns an empty body of type t, or nil if t is not a known type.
func New(t Type) Body {
	switch t {
	case TypeInit:
		return &Init{}
	case TypeInitOK:
		return &InitOK{}
	case TypeEcho:
		return &Echo{}
	case TypeEchoOK:
		return &EchoOK{}
	case TypeGenerate:
		return &Generate{}
	case TypeGenerateOK:
		return &GenerateOK{}
	case TypeBroadcast:
		return &Broadcast{}
	case TypeBroadcastOK:
		return &BroadcastOK{}
	case TypeRead:
		return &Read{}
	case TypeReadOK:
		return &ReadOK{}
	case TypeTopology:
		return &Topology{}
	case TypeTopologyOK:
		return &TopologyOK{}
	case TypeError:
		return &Error{}
	}
	return nil
}

// Package message defines the envelope and body schema of the harness wire
// protocol and its line codec.
//
// On the wire every message is one JSON object:
//
//	{"src":"c1","dest":"n1","body":{"type":"echo","msg_id":1,"echo":"hi"}}
//
// Body is a closed sum type. Each body type is its own struct carrying only
// the fields its type defines, so a field that does not belong to a type
// cannot be set on it, and optional fields are omitted from the wire rather
// than written as null.
package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daviddao/maelstrom-echo/pkg/id"
)

var (
	// ErrUnknownType is returned for a body whose type tag is not defined.
	ErrUnknownType = errors.New("message: unknown body type")
	// ErrNoBody is returned for an envelope without a body.
	ErrNoBody = errors.New("message: missing body")
	// ErrNoType is returned for a body without a type tag.
	ErrNoType = errors.New("message: body has no type")
	// ErrNoSrc is returned for an envelope without a src.
	ErrNoSrc = errors.New("message: missing src")
	// ErrNoDest is returned for an envelope without a dest.
	ErrNoDest = errors.New("message: missing dest")
)

// Type is the body type tag.
type Type string

// Body type tags as they appear on the wire.
const (
	TypeInit        Type = "init"
	TypeInitOK      Type = "init_ok"
	TypeEcho        Type = "echo"
	TypeEchoOK      Type = "echo_ok"
	TypeGenerate    Type = "generate"
	TypeGenerateOK  Type = "generate_ok"
	TypeBroadcast   Type = "broadcast"
	TypeBroadcastOK Type = "broadcast_ok"
	TypeRead        Type = "read"
	TypeReadOK      Type = "read_ok"
	TypeTopology    Type = "topology"
	TypeTopologyOK  Type = "topology_ok"
	TypeError       Type = "error"
)

// Header holds the correlation fields every body carries.
type Header struct {
	MsgID     *uint64 `json:"msg_id,omitempty"`
	InReplyTo *uint64 `json:"in_reply_to,omitempty"`
}

func (h *Header) header() *Header { return h }

// Body is implemented only by the body types of this package.
type Body interface {
	Type() Type
	header() *Header
}

// HeaderOf returns the correlation header of b for reading or stamping.
func HeaderOf(b Body) *Header { return b.header() }

// Envelope is one message in flight.
type Envelope struct {
	Src  id.ID
	Dest id.ID
	Body Body
}

// wireEnvelope is the outgoing JSON shape of an Envelope.
type wireEnvelope struct {
	Src  id.ID           `json:"src"`
	Dest id.ID           `json:"dest"`
	Body json.RawMessage `json:"body"`
}

// incomingEnvelope tells an absent or null src/dest apart from n0.
type incomingEnvelope struct {
	Src  *id.ID          `json:"src"`
	Dest *id.ID          `json:"dest"`
	Body json.RawMessage `json:"body"`
}

// MarshalJSON encodes e in its wire shape. A nil Body is an error.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Body == nil {
		return nil, ErrNoBody
	}
	body, err := MarshalBody(e.Body)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEnvelope{Src: e.Src, Dest: e.Dest, Body: body})
}

// UnmarshalJSON decodes one wire envelope. src, dest and body are all
// required.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var w incomingEnvelope
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Src == nil {
		return ErrNoSrc
	}
	if w.Dest == nil {
		return ErrNoDest
	}
	if len(w.Body) == 0 || bytes.Equal(w.Body, []byte("null")) {
		return ErrNoBody
	}
	body, err := UnmarshalBody(w.Body)
	if err != nil {
		return err
	}
	*e = Envelope{Src: *w.Src, Dest: *w.Dest, Body: body}
	return nil
}

// MarshalBody encodes b as a JSON object with its type tag first.
func MarshalBody(b Body) ([]byte, error) {
	fields, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal %s body: %w", b.Type(), err)
	}
	tag, err := json.Marshal(b.Type())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(fields) + len(tag) + 9)
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if len(fields) > 2 {
		buf.WriteByte(',')
		buf.Write(fields[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// UnmarshalBody decodes a JSON body object into its concrete type.
func UnmarshalBody(raw []byte) (Body, error) {
	var peek struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil {
		return nil, err
	}
	if peek.Type == "" {
		return nil, ErrNoType
	}
	b := New(peek.Type)
	if b == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, peek.Type)
	}
	if err := json.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("decode %s body: %w", peek.Type, err)
	}
	return b, nil
}

// Decode parses one wire line.
func Decode(line []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(line, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// Encode renders e as one wire line without the trailing newline.
func Encode(e Envelope) ([]byte, error) {
	return json.Marshal(e)
}

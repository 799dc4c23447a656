// Package id implements the identifier grammar shared by the harness and
// its nodes.
//
// An identifier is a single tag letter followed by a decimal number:
//
//	n0, n1, ...   cluster nodes
//	c0, c1, ...   external clients
//
// Parsing is lenient about where the digits sit: every ASCII digit after
// the tag letter is collected, so "n1x2" reads as n12. Formatting is always
// canonical.
package id

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("id: empty input")
	// ErrMalformedNumber is returned when the digits are missing or do not
	// fit in 32 bits.
	ErrMalformedNumber = errors.New("id: malformed number")
	// ErrUnknownVariant is returned when the tag letter is neither n nor c.
	ErrUnknownVariant = errors.New("id: unknown variant")
)

// Kind selects the identifier variant.
type Kind uint8

const (
	Node   Kind = iota // a cluster node, tag n
	Client             // an external client, tag c
)

func (k Kind) prefix() byte {
	if k == Client {
		return 'c'
	}
	return 'n'
}

// String returns the variant name, e.g. "node".
func (k Kind) String() string {
	switch k {
	case Node:
		return "node"
	case Client:
		return "client"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ID identifies a node or a client.
type ID struct {
	Kind Kind
	N    uint32
}

// NodeID returns the node identifier n<n>.
func NodeID(n uint32) ID { return ID{Kind: Node, N: n} }

// ClientID returns the client identifier c<n>.
func ClientID(n uint32) ID { return ID{Kind: Client, N: n} }

// IsNode reports whether i names a cluster node.
func (i ID) IsNode() bool { return i.Kind == Node }

// IsClient reports whether i names an external client.
func (i ID) IsClient() bool { return i.Kind == Client }

// String returns the canonical form, e.g. "n1" or "c42".
func (i ID) String() string {
	b := make([]byte, 0, 11)
	b = append(b, i.Kind.prefix())
	return string(strconv.AppendUint(b, uint64(i.N), 10))
}

// Parse reads an identifier from its textual form.
func Parse(s string) (ID, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return ID{}, ErrEmptyInput
	}

	tag, size := utf8.DecodeRuneInString(input)
	var kind Kind
	switch unicode.ToLower(tag) {
	case 'n':
		kind = Node
	case 'c':
		kind = Client
	default:
		return ID{}, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}

	var digits strings.Builder
	for _, r := range input[size:] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ID{}, fmt.Errorf("%w: %q has no digits", ErrMalformedNumber, s)
	}
	n, err := strconv.ParseUint(digits.String(), 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, s, err)
	}
	return ID{Kind: kind, N: uint32(n)}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constant tables.
func MustParse(s string) ID {
	i, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return i
}

// MarshalText encodes i in its canonical form, so an ID is a JSON string
// and can key a JSON object.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses text with Parse.
func (i *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Without returns ids with every occurrence of self removed, keeping order.
func Without(ids []ID, self ID) []ID {
	out := make([]ID, 0, len(ids))
	for _, i := range ids {
		if i != self {
			out = append(out, i)
		}
	}
	return out
}

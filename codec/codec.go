// Package codec turns single field values into self-contained text
// fragments and back.
//
// Every value is wrapped in a one-key envelope, {v: <value>}, before it is
// serialized, so bare scalars, vectors and nested structs all share one
// shape. The fragment carries no type information: callers decode with the
// same static type they encoded with, which the registry's field
// descriptors guarantee.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodedValue is the opaque text produced by Encode.
type EncodedValue string

var ErrMissingValue = errors.New("codec: envelope has no value")

// DecodeError reports a fragment that is malformed for the requested type.
type DecodeError struct {
	Kind Kind
	Text EncodedValue
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: decode %s from %q: %v", e.Kind, string(e.Text), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type envelope[T any] struct {
	V *T `yaml:"v"`
}

// Encode serializes value inside the envelope as a single flow-style line.
func Encode[T any](value T) (EncodedValue, error) {
	var n yaml.Node
	if err := n.Encode(envelope[T]{V: &value}); err != nil {
		return "", fmt.Errorf("codec: encode %s: %w", KindOf[T](), err)
	}
	flow(&n)
	b, err := yaml.Marshal(&n)
	if err != nil {
		return "", fmt.Errorf("codec: encode %s: %w", KindOf[T](), err)
	}
	return EncodedValue(strings.TrimRight(string(b), "\n")), nil
}

// Decode parses an envelope produced by Encode[T]. Unknown struct fields,
// a missing or null value and scalars of the wrong type are all reported as
// *DecodeError.
func Decode[T any](encoded EncodedValue) (T, error) {
	var zero T
	dec := yaml.NewDecoder(strings.NewReader(string(encoded)))
	dec.KnownFields(true)

	var env envelope[T]
	if err := dec.Decode(&env); err != nil {
		return zero, &DecodeError{Kind: KindOf[T](), Text: encoded, Err: err}
	}
	if env.V == nil {
		return zero, &DecodeError{Kind: KindOf[T](), Text: encoded, Err: ErrMissingValue}
	}
	return *env.V, nil
}

// MustEncode is Encode for values known to be encodable, such as literals in
// tests and builtin content.
func MustEncode[T any](value T) EncodedValue {
	enc, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return enc
}

func flow(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style |= yaml.FlowStyle
	}
	for _, c := range n.Content {
		flow(c)
	}
}

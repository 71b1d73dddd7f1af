// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"strconv"
	"strings"
)

// Flow is the direction of a member as seen from the interface owner:
// FlowOut members are driven by the owner, FlowIn members by its peer.
//
type Flow uint8

// Flow directions.
//
const (
	FlowOut Flow = iota
	FlowIn
)

// Flip returns the opposite direction.
//
func (f Flow) Flip() Flow {
	if f == FlowOut {
		return FlowIn
	}
	return FlowOut
}

func (f Flow) String() string {
	if f == FlowOut {
		return "out"
	}
	return "in"
}

// A Member is a single named slot in a Signature: either a port with a
// shape and an optional reset value, or a nested signature. Members are
// immutable values; Flip, Array and WithReset return modified copies.
//
type Member struct {
	flow  Flow
	sig   *Signature // nil for port members
	shape Shape
	reset *int64
	dims  []int
}

// NewMember returns a member with the given flow. The description must
// be a Shape, an int width (taken as an unsigned shape) or a
// *Signature; NewMember panics with a type usage error otherwise.
//
func NewMember(flow Flow, description interface{}) Member {
	switch d := description.(type) {
	case Shape:
		if d.Width < 0 {
			panic(usageErrf(KindType, "shape width %d is negative", d.Width))
		}
		return Member{flow: flow, shape: d}
	case int:
		if d < 0 {
			panic(usageErrf(KindType, "shape width %d is negative", d))
		}
		return Member{flow: flow, shape: U(d)}
	case *Signature:
		if d == nil {
			panic(usageErrf(KindType, "member description is a nil signature"))
		}
		return Member{flow: flow, sig: d}
	default:
		panic(usageErrf(KindType, "member description must be a shape or a signature, not %v", description))
	}
}

// Out returns an output member with the given description.
//
func Out(description interface{}) Member { return NewMember(FlowOut, description) }

// In returns an input member with the given description.
//
func In(description interface{}) Member { return NewMember(FlowIn, description) }

// Flow returns the member's flow direction.
//
func (m Member) Flow() Flow { return m.flow }

// IsPort reports whether the member is a port.
//
func (m Member) IsPort() bool { return m.sig == nil }

// IsSignature reports whether the member is a nested signature.
//
func (m Member) IsSignature() bool { return m.sig != nil }

// Flip returns the member with its flow inverted.
//
func (m Member) Flip() Member {
	m.flow = m.flow.Flip()
	return m
}

// Array wraps the member in the given array dimensions, outermost
// first. Array is chainable: m.Array(a).Array(b) is m.Array(b, a),
// later calls prepend. Dimensions must not be negative.
//
func (m Member) Array(dims ...int) Member {
	for _, d := range dims {
		if d < 0 {
			panic(usageErrf(KindType, "array dimension %d is negative", d))
		}
	}
	m.dims = append(append([]int{}, dims...), m.dims...)
	return m
}

// WithReset returns the member with the given reset value. The value
// must fit the member's shape, and the member must be a port.
//
func (m Member) WithReset(v int64) Member {
	if m.sig != nil {
		panic(usageErrf(KindValue, "a reset value cannot be provided for a member with a signature %s", m.sig))
	}
	if m.shape.mask(v) != v {
		panic(usageErrf(KindType, "reset value %d does not fit in %s", v, m.shape))
	}
	m.reset = &v
	return m
}

// Dimensions returns the member's array dimensions, outermost first.
//
func (m Member) Dimensions() []int {
	return append([]int(nil), m.dims...)
}

// Shape returns the shape of a port member. It panics with an attribute
// usage error on a signature member.
//
func (m Member) Shape() Shape {
	if m.sig != nil {
		panic(usageErrf(KindAttribute, "a member with a signature %s does not have a shape", m.sig))
	}
	return m.shape
}

// Reset returns the reset value of a port member, and whether one was
// declared. It panics with an attribute usage error on a signature
// member.
//
func (m Member) Reset() (int64, bool) {
	if m.sig != nil {
		panic(usageErrf(KindAttribute, "a member with a signature %s does not have a reset value", m.sig))
	}
	if m.reset == nil {
		return 0, false
	}
	return *m.reset, true
}

// Signature returns the nested signature of a signature member. An In
// member presents the flipped signature: from the consuming side, an In
// member is the provider's Out, so its internals show the inverse
// polarity. Signature panics with an attribute usage error on a port
// member.
//
func (m Member) Signature() *Signature {
	if m.sig == nil {
		panic(usageErrf(KindAttribute, "a port member with shape %s does not have a signature", m.shape))
	}
	if m.flow == FlowIn {
		return m.sig.Flip()
	}
	return m.sig
}

// Eq reports structural equality over (flow, payload, reset,
// dimensions).
//
func (m Member) Eq(o Member) bool {
	if m.flow != o.flow || len(m.dims) != len(o.dims) {
		return false
	}
	for i := range m.dims {
		if m.dims[i] != o.dims[i] {
			return false
		}
	}
	if m.IsSignature() != o.IsSignature() {
		return false
	}
	if m.IsSignature() {
		return m.sig.Eq(o.sig)
	}
	if m.shape != o.shape {
		return false
	}
	mr, mok := m.Reset()
	or, ook := o.Reset()
	return mok == ook && mr == or
}

func (m Member) String() string {
	var b strings.Builder
	b.WriteString(m.flow.String())
	b.WriteRune(' ')
	if m.sig != nil {
		b.WriteString(m.sig.String())
	} else {
		b.WriteString(m.shape.String())
		if m.reset != nil {
			b.WriteString("/reset=")
			b.WriteString(strconv.FormatInt(*m.reset, 10))
		}
	}
	for _, d := range m.dims {
		b.WriteString("[" + strconv.Itoa(d) + "]")
	}
	return b.String()
}

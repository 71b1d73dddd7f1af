// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import "strconv"

// A Shape describes the bit-level layout of a leaf value: its width in
// bits and its signedness.
//
type Shape struct {
	Width  int
	Signed bool
}

// U returns an unsigned shape of the given width.
//
func U(width int) Shape { return Shape{Width: width} }

// S returns a signed shape of the given width.
//
func S(width int) Shape { return Shape{Width: width, Signed: true} }

func (s Shape) String() string {
	if s.Signed {
		return "signed(" + strconv.Itoa(s.Width) + ")"
	}
	return "unsigned(" + strconv.Itoa(s.Width) + ")"
}

// mask truncates v to the shape's width, sign-extending for signed
// shapes.
//
func (s Shape) mask(v int64) int64 {
	if s.Width <= 0 {
		return 0
	}
	if s.Width >= 64 {
		return v
	}
	v &= 1<<uint(s.Width) - 1
	if s.Signed && v&(1<<uint(s.Width-1)) != 0 {
		v -= 1 << uint(s.Width)
	}
	return v
}

// A Value is a leaf of an interface: either a mutable *Signal or a
// fixed *Const. The interface is sealed; the wiring layer never looks
// inside a value beyond its shape and its constant-or-mutable
// classification.
//
type Value interface {
	Shape() Shape
	String() string

	value() // sealed
}

// A Signal is a mutable leaf value. It carries a name for diagnostics
// and generated output, and the reset value it assumes when the design
// comes out of reset.
//
type Signal struct {
	name      string
	shape     Shape
	reset     int64
	resetLess bool
}

// NewSignal returns a new signal of the given shape with reset value 0.
//
func NewSignal(shape Shape, name string) *Signal {
	return &Signal{name: name, shape: shape}
}

// WithReset sets the signal's reset value and returns the signal. The
// value is truncated to the signal's shape.
//
func (s *Signal) WithReset(v int64) *Signal {
	s.reset = s.shape.mask(v)
	return s
}

// AsResetLess marks the signal as having no reset at all and returns
// the signal. Reset-less signals cannot appear in a declared interface.
//
func (s *Signal) AsResetLess() *Signal {
	s.resetLess = true
	return s
}

// Shape returns the signal's shape.
//
func (s *Signal) Shape() Shape { return s.shape }

// Name returns the signal's name.
//
func (s *Signal) Name() string { return s.name }

// Reset returns the signal's reset value.
//
func (s *Signal) Reset() int64 { return s.reset }

// ResetLess reports whether the signal has been marked reset-less.
//
func (s *Signal) ResetLess() bool { return s.resetLess }

func (s *Signal) String() string { return "(sig " + s.name + ")" }

func (s *Signal) value() {}

// A Const is a fixed leaf value. Its value is truncated to its shape at
// construction.
//
type Const struct {
	shape Shape
	val   int64
}

// NewConst returns a new constant of the given shape and value.
//
func NewConst(shape Shape, v int64) *Const {
	return &Const{shape: shape, val: shape.mask(v)}
}

// Shape returns the constant's shape.
//
func (c *Const) Shape() Shape { return c.shape }

// Value returns the constant's value.
//
func (c *Const) Value() int64 { return c.val }

func (c *Const) String() string {
	return "(const " + strconv.FormatInt(c.val, 10) + ")"
}

func (c *Const) value() {}

// CastValue converts v to a leaf Value. Values pass through unchanged,
// integers become unsigned constants of the minimal width able to hold
// them. Anything else fails with a type usage error.
//
func CastValue(v interface{}) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case int:
		return castInt(int64(v)), nil
	case int64:
		return castInt(v), nil
	default:
		return nil, usageErrf(KindType, "value %v cannot be cast to a signal or constant", v)
	}
}

func castInt(v int64) *Const {
	if v < 0 {
		return NewConst(S(bitsFor(-v) + 1), v)
	}
	return NewConst(U(bitsFor(v)), v)
}

// bitsFor returns the number of bits needed to represent v >= 0.
//
func bitsFor(v int64) int {
	n := 1
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

// An Elem is one attribute of a concrete interface: a leaf value, an
// array of elements, or a nested sub-interface. The zero Elem is none
// of these and fails every accessor.
//
type Elem struct {
	v   Value
	seq []Elem
	sub Attrs
}

// ValueElem returns an element holding a leaf value.
//
func ValueElem(v Value) Elem { return Elem{v: v} }

// SeqElem returns an element holding an array of elements.
//
func SeqElem(elems ...Elem) Elem {
	if elems == nil {
		elems = []Elem{}
	}
	return Elem{seq: elems}
}

// SubElem returns an element holding a nested interface.
//
func SubElem(sub Attrs) Elem { return Elem{sub: sub} }

// Value returns the leaf value held by the element, if any.
//
func (e Elem) Value() (Value, bool) { return e.v, e.v != nil }

// Seq returns the array held by the element, if any.
//
func (e Elem) Seq() ([]Elem, bool) { return e.seq, e.seq != nil }

// Sub returns the nested interface held by the element, if any.
//
func (e Elem) Sub() (Attrs, bool) { return e.sub, e.sub != nil }

// Attrs is the capability to look up attributes by member name. It is
// implemented by *Iface and by Component, and by any designer-defined
// type that wants its attributes checked against a Signature.
//
type Attrs interface {
	Attr(name string) (Elem, bool)
}

// A Handle is what Connect wires: an object exposing a declared
// signature along with its attributes.
//
type Handle interface {
	Attrs
	Signature() *Signature
}

// An Iface is a concrete interface instantiated from a Signature: one
// attribute per member name. The declared attribute set is fixed at
// creation, but designers may attach extra attributes outside of it.
//
type Iface struct {
	sig   *Signature
	attrs map[string]Elem
}

// Signature returns the signature the interface was created from.
//
func (i *Iface) Signature() *Signature { return i.sig }

// Attr returns the named attribute.
//
func (i *Iface) Attr(name string) (Elem, bool) {
	e, ok := i.attrs[name]
	return e, ok
}

// Set attaches an attribute to the interface, replacing any previous
// value. Attributes outside the declared member set are allowed; the
// signature's own compliance checking ignores them.
//
func (i *Iface) Set(name string, e Elem) {
	i.attrs[name] = e
}

// Leaf returns the leaf value of the named port attribute. It panics
// with an attribute usage error if the attribute is missing or is not a
// leaf.
//
func (i *Iface) Leaf(name string) Value {
	e, ok := i.attrs[name]
	if !ok {
		panic(usageErrf(KindAttribute, "interface has no attribute %q", name))
	}
	v, ok := e.Value()
	if !ok {
		panic(usageErrf(KindAttribute, "attribute %q is not a leaf value", name))
	}
	return v
}

// Sub returns the named nested interface attribute. It panics with an
// attribute usage error if the attribute is missing or is not a nested
// interface.
//
func (i *Iface) Sub(name string) Attrs {
	e, ok := i.attrs[name]
	if !ok {
		panic(usageErrf(KindAttribute, "interface has no attribute %q", name))
	}
	s, ok := e.Sub()
	if !ok {
		panic(usageErrf(KindAttribute, "attribute %q is not a nested interface", name))
	}
	return s
}

// Flipped returns a view of h reporting the flipped signature while
// delegating attribute access to h. Flipping a flipped handle returns
// the original.
//
func Flipped(h Handle) Handle {
	if f, ok := h.(flippedHandle); ok {
		return f.h
	}
	return flippedHandle{h: h}
}

type flippedHandle struct {
	h Handle
}

func (f flippedHandle) Signature() *Signature { return f.h.Signature().Flip() }

func (f flippedHandle) Attr(name string) (Elem, bool) { return f.h.Attr(name) }

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Signature is a named collection of members describing one side of a
// hardware interface.
//
// Signatures come in two kinds. Anonymous signatures, built with
// NewSignature, compare structurally: two are equal when their member
// trees match. Named signatures, built with NewNamedSignature, carry an
// identity and compare by it: a named signature may promise behavior
// beyond its member set, so two distinct named signatures are never
// equal just because their members happen to match.
//
type Signature struct {
	members SignatureMembers
	flip    bool
	ident   *identity
}

type identity struct {
	name string
}

// NewSignature returns an anonymous signature with the given members.
// It panics with a name usage error on an invalid member name.
//
func NewSignature(members map[string]Member) *Signature {
	return &Signature{members: NewMembers(members)}
}

// NewNamedSignature returns a named signature with the given members.
// Each call mints a fresh identity: the result is only ever equal to
// itself and its own flips.
//
func NewNamedSignature(name string, members map[string]Member) *Signature {
	return &Signature{members: NewMembers(members), ident: &identity{name: name}}
}

// Name returns the signature's name, or "" for an anonymous signature.
//
func (s *Signature) Name() string {
	if s.ident == nil {
		return ""
	}
	return s.ident.name
}

// Members returns the signature's members, with flows adjusted for a
// flipped signature.
//
func (s *Signature) Members() SignatureMembers {
	if s.flip {
		return s.members.Flip()
	}
	return s.members
}

// Flip returns the signature with every flow inverted. The result is a
// lightweight view sharing the member collection, not a copy.
//
func (s *Signature) Flip() *Signature {
	return &Signature{members: s.members, flip: !s.flip, ident: s.ident}
}

// Freeze locks the signature against further member insertions,
// recursively.
//
func (s *Signature) Freeze() { s.members.Freeze() }

// Frozen reports whether the signature has been frozen.
//
func (s *Signature) Frozen() bool { return s.members.Frozen() }

// Eq reports whether two signatures are equal: structurally for
// anonymous signatures, by identity and polarity for named ones.
//
func (s *Signature) Eq(o *Signature) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.ident != nil || o.ident != nil {
		return s.ident == o.ident && s.flip == o.flip
	}
	return s.Members().Eq(o.Members())
}

func (s *Signature) String() string {
	var b strings.Builder
	if s.flip {
		b.WriteString("flipped ")
	}
	if s.ident != nil {
		b.WriteString(s.ident.name)
		return b.String()
	}
	b.WriteString("Signature(")
	for i, name := range s.members.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		m, _ := s.Members().Get(name)
		b.WriteString(name + ": " + m.String())
	}
	b.WriteString(")")
	return b.String()
}

// IsCompliant reports whether the attributes of obj structurally
// satisfy the signature. It stops at the first violation; use
// Violations to collect all of them.
//
func (s *Signature) IsCompliant(obj Attrs) bool {
	return s.comply("", obj, nil)
}

// Violations returns every reason why obj does not satisfy the
// signature, or nil if it does.
//
func (s *Signature) Violations(obj Attrs) []string {
	var reasons []string
	s.comply("", obj, &reasons)
	return reasons
}

// comply walks the member tree against obj's attributes. With a nil
// reasons it short-circuits on the first violation, otherwise it
// accumulates every one. prefix is the path label used in reasons (the
// handle name, for Connect).
//
func (s *Signature) comply(prefix string, obj Attrs, reasons *[]string) bool {
	ok := true
	for _, name := range s.Members().Names() {
		m, _ := s.Members().Get(name)
		label := joinLabel(prefix, name)
		e, found := obj.Attr(name)
		if !found {
			report(reasons, "attribute '%s' is missing", label)
			if reasons == nil {
				return false
			}
			ok = false
			continue
		}
		if !s.complyElem(label, m, m.Dimensions(), e, reasons) {
			if reasons == nil {
				return false
			}
			ok = false
		}
	}
	return ok
}

func (s *Signature) complyElem(label string, m Member, dims []int, e Elem, reasons *[]string) bool {
	if len(dims) > 0 {
		seq, isSeq := e.Seq()
		if !isSeq {
			return report(reasons, "attribute '%s' is expected to be a sequence of length %d, but is not a sequence", label, dims[0])
		}
		if len(seq) != dims[0] {
			return report(reasons, "attribute '%s' is expected to be a sequence of length %d, but has length %d", label, dims[0], len(seq))
		}
		ok := true
		for i, sub := range seq {
			if !s.complyElem(label+"["+strconv.Itoa(i)+"]", m, dims[1:], sub, reasons) {
				if reasons == nil {
					return false
				}
				ok = false
			}
		}
		return ok
	}
	if m.IsSignature() {
		sub, isSub := e.Sub()
		if !isSub {
			return report(reasons, "attribute '%s' is expected to be an interface, but is not one", label)
		}
		return m.Signature().comply(label, sub, reasons)
	}
	v, isValue := e.Value()
	if !isValue {
		return report(reasons, "attribute '%s' is neither a signal nor a constant", label)
	}
	if v.Shape() != m.Shape() {
		return report(reasons, "attribute '%s' is expected to have shape %s, but has shape %s", label, m.Shape(), v.Shape())
	}
	if sig, isSig := v.(*Signal); isSig {
		want, _ := m.Reset()
		if sig.Reset() != want {
			return report(reasons, "signal '%s' is expected to have reset value %d, but has reset value %d", label, want, sig.Reset())
		}
		if sig.ResetLess() {
			return report(reasons, "signal '%s' is expected to have a reset value, but is reset-less", label)
		}
	}
	return true
}

// report records a violation when accumulating, and always returns
// false so that callers can propagate the failure.
//
func report(reasons *[]string, format string, args ...interface{}) bool {
	if reasons == nil {
		return false
	}
	*reasons = append(*reasons, errors.Errorf(format, args...).Error())
	return false
}

func joinLabel(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// A FlatValue pairs a member with the attribute value resolved from a
// concrete interface.
//
type FlatValue struct {
	Path   Path
	Member Member
	Elem   Elem
}

// Flatten pairs each member of the signature with the corresponding
// attribute of obj, in lexicographic path order, nested signature
// members included. It fails if obj does not structurally match the
// signature; a compliant obj never fails.
//
func (s *Signature) Flatten(obj Attrs) ([]FlatValue, error) {
	return s.flattenObj(nil, nil, obj.Attr)
}

func (s *Signature) flattenObj(out []FlatValue, path Path, attr func(string) (Elem, bool)) ([]FlatValue, error) {
	var err error
	for _, name := range s.Members().Names() {
		m, _ := s.Members().Get(name)
		p := path.join(name)
		e, ok := attr(name)
		if !ok {
			return nil, errors.Errorf("flatten: attribute '%s' is missing", p)
		}
		out = append(out, FlatValue{Path: p, Member: m, Elem: e})
		if m.IsSignature() {
			depth := len(m.Dimensions())
			sub := m.Signature()
			out, err = sub.flattenObj(out, p, func(child string) (Elem, bool) {
				return childElem(e, depth, child)
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// childElem resolves the child attribute of a nested-interface element,
// mapping over depth levels of array nesting.
//
func childElem(e Elem, depth int, name string) (Elem, bool) {
	if depth == 0 {
		sub, ok := e.Sub()
		if !ok {
			return Elem{}, false
		}
		return sub.Attr(name)
	}
	seq, ok := e.Seq()
	if !ok {
		return Elem{}, false
	}
	out := make([]Elem, len(seq))
	for i, s := range seq {
		ce, ok := childElem(s, depth-1, name)
		if !ok {
			return Elem{}, false
		}
		out[i] = ce
	}
	return SeqElem(out...), true
}

// Create instantiates a concrete interface from the signature: a fresh
// signal per port member (named by joining the member path with "__",
// array indices included), a nested interface per signature member, and
// nested sequences for array dimensions.
//
func (s *Signature) Create() *Iface {
	return s.create(nil)
}

func (s *Signature) create(path []string) *Iface {
	i := &Iface{sig: s, attrs: make(map[string]Elem, s.Members().Len())}
	for _, name := range s.Members().Names() {
		m, _ := s.Members().Get(name)
		i.attrs[name] = createElem(m, append(path[:len(path):len(path)], name), m.Dimensions())
	}
	return i
}

func createElem(m Member, path []string, dims []int) Elem {
	if len(dims) > 0 {
		seq := make([]Elem, dims[0])
		for idx := range seq {
			seq[idx] = createElem(m, append(path[:len(path):len(path)], strconv.Itoa(idx)), dims[1:])
		}
		return SeqElem(seq...)
	}
	if m.IsSignature() {
		return SubElem(m.Signature().create(path))
	}
	reset, _ := m.Reset()
	return ValueElem(NewSignal(m.Shape(), strings.Join(path, "__")).WithReset(reset))
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An Assign is a directed combinational assignment of a source leaf
// value to a destination signal. Assignments emitted by Connect are
// meant to be continuously driven; scheduling them in a clocked context
// would introduce a latency the signature contract never promised.
//
type Assign struct {
	Dst *Signal
	Src Value
}

// A Plan accumulates the assignments of one or more connections, to be
// folded by the caller into the combinational statement list of the
// module being built. Connect appends to a plan all-or-nothing: a
// failed connection leaves the plan untouched.
//
type Plan struct {
	assigns []Assign
}

// Assigns returns the accumulated assignments in emission order.
//
func (p *Plan) Assigns() []Assign { return p.assigns }

// Len returns the number of accumulated assignments.
//
func (p *Plan) Len() int { return len(p.assigns) }

// A NamedHandle pairs a handle with the name used to report connection
// errors against it.
//
type NamedHandle struct {
	Name   string
	Handle Handle
}

// Named returns a named handle for Connect.
//
func Named(name string, h Handle) NamedHandle {
	return NamedHandle{Name: name, Handle: h}
}

// Connect wires the given interfaces together and appends the resulting
// assignments to plan.
//
// Every handle is first checked for compliance with its own declared
// signature, and all signatures are frozen. Connect then walks the
// member trees of all handles in lockstep, in lexicographic path order,
// and at every shared path either recurses (nested signatures) or pairs
// the single output member with every input member, index by index
// across array dimensions. Any structural disagreement fails with a
// *ConnectionError naming the offending paths and handles, and nothing
// is appended to the plan.
//
func Connect(plan *Plan, handles ...NamedHandle) error {
	seqs := make([][]PathMember, len(handles))
	for i, h := range handles {
		if h.Handle == nil {
			return usageErrf(KindAttribute, "connect argument '%s' is missing a signature", h.Name)
		}
		sig := h.Handle.Signature()
		if sig == nil {
			return usageErrf(KindAttribute, "connect argument '%s' is missing a signature", h.Name)
		}
		var reasons []string
		sig.comply(h.Name, h.Handle, &reasons)
		if len(reasons) > 0 {
			return &ConnectionError{
				Msg:     "connect argument '" + h.Name + "' does not comply with its signature",
				Reasons: reasons,
			}
		}
		sig.Freeze()
		seqs[i] = sig.Members().Flatten()
	}

	cursors := make([]int, len(handles))
	var out []Assign
	for {
		// Pick the earliest and latest next paths over all handles; an
		// exhausted handle sorts after everything.
		first, last := -1, -1
		for i := range handles {
			if cursors[i] >= len(seqs[i]) {
				if last == -1 || cursors[last] < len(seqs[last]) {
					last = i
				}
				continue
			}
			p := seqs[i][cursors[i]].Path
			if first == -1 || p.less(seqs[first][cursors[first]].Path) {
				first = i
			}
			if last == -1 || (cursors[last] < len(seqs[last]) && seqs[last][cursors[last]].Path.less(p)) {
				last = i
			}
		}
		if first == -1 {
			break
		}
		// All heads agree iff the earliest and latest paths coincide.
		path := seqs[first][cursors[first]].Path
		if cursors[last] >= len(seqs[last]) || path.String() != seqs[last][cursors[last]].Path.String() {
			return connErrf("Member '%s.%s' is present in '%s', but not in '%s'",
				handles[first].Name, path, handles[first].Name, handles[last].Name)
		}

		// Classify the members at this path.
		var sigIdx, outIdx, inIdx []int
		members := make([]Member, len(handles))
		for i := range handles {
			members[i] = seqs[i][cursors[i]].Member
			cursors[i]++
			switch {
			case members[i].IsSignature():
				sigIdx = append(sigIdx, i)
			case members[i].Flow() == FlowOut:
				outIdx = append(outIdx, i)
			default:
				inIdx = append(inIdx, i)
			}
		}
		if len(sigIdx) > 0 && len(outIdx)+len(inIdx) > 0 {
			return connErrf("cannot connect the signature member(s) %s with the port member(s) %s",
				quoteMembers(handles, sigIdx, path), quoteMembers(handles, append(outIdx, inIdx...), path))
		}
		// Dimensions must agree pairwise for ports and nested
		// signatures alike.
		ref := 0
		for i := 1; i < len(handles); i++ {
			if !dimsEq(members[i].Dimensions(), members[ref].Dimensions()) {
				return connErrf("cannot connect the members '%s.%s' and '%s.%s' that have different dimensions %v and %v",
					handles[ref].Name, path, handles[i].Name, path, members[ref].Dimensions(), members[i].Dimensions())
			}
		}
		if len(sigIdx) > 0 {
			// nested signatures: their leaves follow in the walk.
			continue
		}

		// Port members only: widths and explicit resets must agree
		// pairwise. Only the width of a shape is load bearing here; a
		// signedness mismatch is accepted.
		for i := 1; i < len(handles); i++ {
			if members[i].Shape().Width != members[ref].Shape().Width {
				return connErrf("cannot connect the members '%s.%s' and '%s.%s' that have different shapes %s and %s",
					handles[ref].Name, path, handles[i].Name, path, members[ref].Shape(), members[i].Shape())
			}
		}
		reset := -1
		for i := range handles {
			if _, ok := members[i].Reset(); !ok {
				continue
			}
			if reset == -1 {
				reset = i
				continue
			}
			rv, _ := members[reset].Reset()
			iv, _ := members[i].Reset()
			if rv != iv {
				return connErrf("cannot connect the members '%s.%s' and '%s.%s' that have different reset values %d and %d",
					handles[reset].Name, path, handles[i].Name, path, rv, iv)
			}
		}
		if len(outIdx) > 1 {
			return connErrf("cannot connect several output members %s together",
				quoteMembers(handles, outIdx, path))
		}
		if len(outIdx) == 0 {
			// input-only: every leaf keeps its own reset, which the
			// checks above proved consistent.
			continue
		}

		src, err := resolveElem(handles[outIdx[0]].Handle, path)
		if err != nil {
			return errors.Wrapf(err, "connecting '%s'", handles[outIdx[0]].Name)
		}
		for _, i := range inIdx {
			dst, err := resolveElem(handles[i].Handle, path)
			if err != nil {
				return errors.Wrapf(err, "connecting '%s'", handles[i].Name)
			}
			label := handles[i].Name + "." + path.String()
			if err := emitPairs(label, dst, src, &out); err != nil {
				return err
			}
		}
	}

	plan.assigns = append(plan.assigns, out...)
	return nil
}

// resolveElem looks up the attribute tree of a handle along a member
// path, mapping over array levels.
//
func resolveElem(a Attrs, path Path) (Elem, error) {
	e, ok := a.Attr(path[0])
	if !ok {
		return Elem{}, errors.Errorf("attribute '%s' is missing", path[0])
	}
	for _, name := range path[1:] {
		e, ok = descendElem(e, name)
		if !ok {
			return Elem{}, errors.Errorf("attribute '%s' cannot be resolved", path)
		}
	}
	return e, nil
}

func descendElem(e Elem, name string) (Elem, bool) {
	if sub, ok := e.Sub(); ok {
		return sub.Attr(name)
	}
	seq, ok := e.Seq()
	if !ok {
		return Elem{}, false
	}
	out := make([]Elem, len(seq))
	for i, s := range seq {
		ce, ok := descendElem(s, name)
		if !ok {
			return Elem{}, false
		}
		out[i] = ce
	}
	return SeqElem(out...), true
}

// emitPairs zips a destination element with a source element across
// array dimensions and emits one assignment per mutable destination
// leaf. Constant destinations are never driven: a constant source with
// the same value is accepted silently, anything else is an error.
//
func emitPairs(label string, dst, src Elem, out *[]Assign) error {
	if dseq, ok := dst.Seq(); ok {
		sseq, ok := src.Seq()
		if !ok || len(sseq) != len(dseq) {
			return errors.Errorf("array shape mismatch at '%s'", label)
		}
		for i := range dseq {
			if err := emitPairs(label+"["+strconv.Itoa(i)+"]", dseq[i], sseq[i], out); err != nil {
				return err
			}
		}
		return nil
	}
	dv, ok := dst.Value()
	if !ok {
		return errors.Errorf("attribute '%s' is not a leaf value", label)
	}
	sv, ok := src.Value()
	if !ok {
		return errors.Errorf("source for '%s' is not a leaf value", label)
	}
	switch d := dv.(type) {
	case *Signal:
		*out = append(*out, Assign{Dst: d, Src: sv})
	case *Const:
		if sc, isConst := sv.(*Const); isConst && sc.Value() == d.Value() {
			return nil
		}
		return connErrf("cannot connect to the input member '%s' that has a constant value %d", label, d.Value())
	}
	return nil
}

func quoteMembers(handles []NamedHandle, idx []int, path Path) string {
	labels := make([]string, len(idx))
	for i, h := range idx {
		labels[i] = "'" + handles[h].Name + "." + path.String() + "'"
	}
	return strings.Join(labels, ", ")
}

func dimsEq(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

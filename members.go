// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"sort"
	"strings"
	"unicode"
)

// A Path identifies a member within a signature tree, outermost name
// first.
//
type Path []string

func (p Path) String() string { return strings.Join(p, ".") }

// join returns the path extended with name.
//
func (p Path) join(name string) Path {
	return append(append(Path{}, p...), name)
}

// less compares paths element-wise, which orders a parent before its
// children and keeps siblings in name order.
//
func (p Path) less(q Path) bool {
	for i := range p {
		if i >= len(q) {
			return false
		}
		if p[i] != q[i] {
			return p[i] < q[i]
		}
	}
	return len(p) < len(q)
}

// A PathMember pairs a member with its full path in a signature tree.
//
type PathMember struct {
	Path   Path
	Member Member
}

// memberStore is the mutable state shared between a members collection
// and its flipped views.
//
type memberStore struct {
	m      map[string]Member
	frozen bool
}

// SignatureMembers is an insert-only mapping from member names to
// Members. Iteration order is lexicographic by name, not insertion
// order, so that connection walks pair members identically regardless
// of declaration order.
//
// The zero-cost Flip view shares the underlying collection: members
// read through it have their flow inverted, members added through it
// are inverted before being stored, and mutations on either side are
// visible on both.
//
type SignatureMembers struct {
	store *memberStore
	flip  bool
}

// NewMembers returns a new collection holding the given members. It
// panics with a name usage error if a member name is not a valid
// identifier or is the reserved name "signature".
//
func NewMembers(members map[string]Member) SignatureMembers {
	sm := SignatureMembers{store: &memberStore{m: make(map[string]Member, len(members))}}
	for name, m := range members {
		if err := sm.Set(name, m); err != nil {
			panic(err)
		}
	}
	return sm
}

// Flip returns a view of the collection with every flow inverted.
//
func (sm SignatureMembers) Flip() SignatureMembers {
	return SignatureMembers{store: sm.store, flip: !sm.flip}
}

// Len returns the number of members in the collection.
//
func (sm SignatureMembers) Len() int { return len(sm.store.m) }

// Names returns the member names in lexicographic order.
//
func (sm SignatureMembers) Names() []string {
	names := make([]string, 0, len(sm.store.m))
	for name := range sm.store.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frozen reports whether the collection has been frozen.
//
func (sm SignatureMembers) Frozen() bool { return sm.store.frozen }

// Get returns the named member. Unlike a map lookup, a missing name is
// a *SignatureError: an undeclared member is a structural fact, not a
// programming slip.
//
func (sm SignatureMembers) Get(name string) (Member, error) {
	m, ok := sm.store.m[name]
	if !ok {
		return Member{}, sigErrf("member %q is not a part of the signature", name)
	}
	if sm.flip {
		m = m.Flip()
	}
	return m, nil
}

// Set adds a named member to the collection. Member names can neither
// be replaced nor deleted: a signature only ever grows until it is
// frozen. Set fails with a *SignatureError on a duplicate name or a
// frozen collection, and with a name usage error on an invalid or
// reserved name.
//
func (sm SignatureMembers) Set(name string, m Member) error {
	if !validMemberName(name) {
		return usageErrf(KindName, "%q is not a valid member name", name)
	}
	if name == "signature" {
		return usageErrf(KindName, "member name %q is reserved", name)
	}
	if sm.store.frozen {
		return sigErrf("cannot add member %q to a frozen signature", name)
	}
	if _, ok := sm.store.m[name]; ok {
		return sigErrf("member %q is already a part of the signature", name)
	}
	if sm.flip {
		m = m.Flip()
	}
	sm.store.m[name] = m
	return nil
}

// Freeze locks the collection against further insertions, recursively
// through nested signatures. Freezing is idempotent.
//
func (sm SignatureMembers) Freeze() {
	sm.store.frozen = true
	for _, m := range sm.store.m {
		if m.IsSignature() {
			m.sig.Freeze()
		}
	}
}

// Flatten enumerates all (path, member) pairs of the collection in
// lexicographic path order, depth first: a nested signature member is
// followed by its own members with the path extended by its name and
// the flows adjusted for its own polarity.
//
func (sm SignatureMembers) Flatten() []PathMember {
	return sm.flatten(nil, nil)
}

func (sm SignatureMembers) flatten(out []PathMember, path Path) []PathMember {
	for _, name := range sm.Names() {
		m, _ := sm.Get(name)
		p := path.join(name)
		out = append(out, PathMember{Path: p, Member: m})
		if m.IsSignature() {
			out = m.Signature().Members().flatten(out, p)
		}
	}
	return out
}

// Eq reports whether two collections describe the same structure: same
// paths in the same order with equal members. Nested signature payloads
// compare like the signatures themselves, by identity when named.
//
func (sm SignatureMembers) Eq(o SignatureMembers) bool {
	a, b := sm.Flatten(), o.Flatten()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path.String() != b[i].Path.String() || !a[i].Member.Eq(b[i].Member) {
			return false
		}
	}
	return true
}

func validMemberName(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return name != ""
}

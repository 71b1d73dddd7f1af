// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"reflect"
	"strconv"
	"strings"
)

// Component is the base embedded by designer-defined components. After
// InitComponent has run, it exposes the signature derived from the
// struct's field tags and the attributes allocated for it, making the
// enclosing struct usable as a Connect handle.
//
type Component struct {
	sig   *Signature
	attrs map[string]Elem

	// Warnings collects non-fatal diagnostics issued while deriving the
	// signature, such as port-like fields missing a sig tag.
	Warnings []string
}

// Signature returns the derived signature.
//
func (c *Component) Signature() *Signature { return c.sig }

// Attr returns the attribute allocated for the named member.
//
func (c *Component) Attr(name string) (Elem, bool) {
	e, ok := c.attrs[name]
	return e, ok
}

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// InitComponent derives a signature from the field tags of the struct
// pointed to by v and allocates the corresponding signals into the
// fields. v must be a pointer to a struct embedding Component.
//
// Port fields are identified by a `sig` tag. The first tag element is
// the flow, followed by an optional shape ("8" or "s8", defaulting to
// an unsigned bit), an optional "reset=n" and an optional "name=x"
// overriding the lowercased field name:
//
//	type Counter struct {
//		sigwire.Component
//		En    sigwire.Value    `sig:"in"`
//		Load  sigwire.Value    `sig:"in,8,reset=1"`
//		Count [2]sigwire.Value `sig:"out,8"`
//	}
//
// Buses are declared as array fields; the array lengths become the
// member's dimensions, outermost first.
//
// InitComponent fails with a not-implemented usage error when no tagged
// field exists at all, and with a name usage error when a tagged field
// already holds a value or two tags resolve to the same member name.
// Tagged fields must be exported. A field of a port-like type carrying
// no tag is recorded in Warnings, since it is usually a forgotten tag.
//
func InitComponent(v interface{}) error {
	pv := reflect.ValueOf(v)
	if pv.Kind() != reflect.Ptr || pv.IsNil() || pv.Elem().Kind() != reflect.Struct {
		panic(usageErrf(KindType, "component must be a non-nil pointer to a struct, not %T", v))
	}
	sv := pv.Elem()
	st := sv.Type()

	var comp *Component
	members := make(map[string]Member)
	fields := make(map[string]reflect.Value)

	var warnings []string
	n := st.NumField()
	for i := 0; i < n; i++ {
		f := st.Field(i)
		if f.Type == reflect.TypeOf(Component{}) && f.Anonymous {
			comp = sv.Field(i).Addr().Interface().(*Component)
			continue
		}
		tag, ok := f.Tag.Lookup("sig")
		if !ok {
			if isPortType(f.Type) {
				warnings = append(warnings, "field "+f.Name+" of "+st.Name()+" looks like a port but has no sig tag")
			}
			continue
		}
		m, name := memberFromTag(st.Name(), f, tag)
		fv := sv.Field(i)
		if !fv.CanSet() {
			panic(usageErrf(KindType, "field %s of %s is not settable", f.Name, st.Name()))
		}
		if !fv.IsZero() {
			return usageErrf(KindName, "field %s of %s already holds a value", f.Name, st.Name())
		}
		if _, ok := members[name]; ok {
			return usageErrf(KindName, "duplicate member %q in %s", name, st.Name())
		}
		members[name] = m
		fields[name] = fv
	}
	if comp == nil {
		panic(usageErrf(KindType, "%s does not embed sigwire.Component", st.Name()))
	}
	if len(members) == 0 {
		return usageErrf(KindNotImplemented, "component %s does not declare any members", st.Name())
	}

	sig := NewNamedSignature(st.Name(), members)
	comp.sig = sig
	comp.attrs = make(map[string]Elem, len(members))
	comp.Warnings = warnings
	for name, m := range members {
		e := createElem(m, []string{name}, m.Dimensions())
		comp.attrs[name] = e
		fillField(fields[name], e)
	}
	return nil
}

// memberFromTag builds a member from a field's sig tag and type.
//
func memberFromTag(owner string, f reflect.StructField, tag string) (Member, string) {
	parts := strings.Split(tag, ",")
	var flow Flow
	switch parts[0] {
	case "in":
		flow = FlowIn
	case "out":
		flow = FlowOut
	default:
		panic(usageErrf(KindType, "unsupported tag %q for field %s in %s", tag, f.Name, owner))
	}
	shape := U(1)
	name := strings.ToLower(f.Name)
	var reset *int64
	for _, p := range parts[1:] {
		switch {
		case strings.HasPrefix(p, "reset="):
			v, err := strconv.ParseInt(p[len("reset="):], 10, 64)
			if err != nil {
				panic(usageErrf(KindType, "bad reset in tag %q for field %s in %s", tag, f.Name, owner))
			}
			reset = &v
		case strings.HasPrefix(p, "name="):
			name = p[len("name="):]
		default:
			s, err := parseShape(p)
			if err != nil {
				panic(usageErrf(KindType, "bad shape in tag %q for field %s in %s", tag, f.Name, owner))
			}
			shape = s
		}
	}

	dims, elem := fieldDims(f.Type)
	if elem != valueType {
		panic(usageErrf(KindType, "unsupported type %s for field %s in %s", f.Type, f.Name, owner))
	}
	m := NewMember(flow, shape)
	if len(dims) > 0 {
		m = m.Array(dims...)
	}
	if reset != nil {
		m = m.WithReset(*reset)
	}
	return m, name
}

// fieldDims peels array levels off a field type, returning the
// dimensions outermost first and the element type.
//
func fieldDims(t reflect.Type) ([]int, reflect.Type) {
	var dims []int
	for t.Kind() == reflect.Array {
		dims = append(dims, t.Len())
		t = t.Elem()
	}
	return dims, t
}

func isPortType(t reflect.Type) bool {
	_, elem := fieldDims(t)
	return elem == valueType
}

// fillField stores the created element tree into a struct field.
//
func fillField(fv reflect.Value, e Elem) {
	if seq, ok := e.Seq(); ok {
		for i, sub := range seq {
			fillField(fv.Index(i), sub)
		}
		return
	}
	v, _ := e.Value()
	fv.Set(reflect.ValueOf(v))
}

// parseShape parses a width spec: "8" or "s8".
//
func parseShape(s string) (Shape, error) {
	signed := false
	if strings.HasPrefix(s, "s") {
		signed = true
		s = s[1:]
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 0 {
		return Shape{}, usageErrf(KindType, "invalid shape %q", s)
	}
	return Shape{Width: w, Signed: signed}, nil
}

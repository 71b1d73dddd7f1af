// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseSignature parses a textual member list into an anonymous
// signature. Entries are comma separated, each of the form
//
//	<flow> <name>[<width>]=<reset>
//
// where flow is "in" or "out", width is a decimal bit count optionally
// prefixed with "s" for signed, and both the bracketed width (default:
// one unsigned bit) and the reset value are optional:
//
//	sig, err := ParseSignature("out data[8], out valid, in ready")
//
// Nested signatures and array dimensions have no shorthand; declare
// those with NewSignature and Member.Array.
//
func ParseSignature(spec string) (*Signature, error) {
	members := make(map[string]Member)
	for _, entry := range strings.Split(spec, ",") {
		if strings.TrimSpace(entry) == "" {
			return nil, errors.Errorf("in %q: empty member entry", spec)
		}
		name, m, err := parseMember(entry)
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", spec)
		}
		if _, ok := members[name]; ok {
			return nil, errors.Errorf("in %q: duplicate member %q", spec, name)
		}
		members[name] = m
	}
	return NewSignature(members), nil
}

func parseMember(entry string) (string, Member, error) {
	fields := strings.Fields(entry)
	if len(fields) != 2 {
		return "", Member{}, errors.Errorf("expected \"<flow> <name>\", got %q", strings.TrimSpace(entry))
	}
	var flow Flow
	switch fields[0] {
	case "in":
		flow = FlowIn
	case "out":
		flow = FlowOut
	default:
		return "", Member{}, errors.Errorf("expected flow \"in\" or \"out\", got %q", fields[0])
	}

	name := fields[1]
	var reset *int64
	if i := strings.IndexRune(name, '='); i >= 0 {
		v, err := strconv.ParseInt(name[i+1:], 10, 64)
		if err != nil {
			return "", Member{}, errors.Errorf("bad reset value %q", name[i+1:])
		}
		reset = &v
		name = name[:i]
	}
	shape := U(1)
	if i := strings.IndexRune(name, '['); i >= 0 {
		if !strings.HasSuffix(name, "]") {
			return "", Member{}, errors.Errorf("no terminating ] in width of %q", name)
		}
		s, err := parseShape(name[i+1 : len(name)-1])
		if err != nil {
			return "", Member{}, errors.Errorf("bad width in %q", name)
		}
		shape = s
		name = name[:i]
	}
	if !validMemberName(name) || name == "signature" {
		return "", Member{}, errors.Errorf("invalid member name %q", name)
	}

	m := NewMember(flow, shape)
	if reset != nil {
		if shape.mask(*reset) != *reset {
			return "", Member{}, errors.Errorf("reset value %d does not fit in %s", *reset, shape)
		}
		m = m.WithReset(*reset)
	}
	return name, m, nil
}

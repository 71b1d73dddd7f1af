// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package sigwire

import (
	"fmt"
	"strings"
)

// Kind classifies misuses of the declaration API.
//
type Kind int

// Usage error kinds.
//
const (
	// KindType: a malformed shape, member description or reset value.
	KindType Kind = iota
	// KindValue: a value that is structurally valid but not allowed here,
	// such as a reset on a nested signature member.
	KindValue
	// KindName: an invalid or reserved member name.
	KindName
	// KindAttribute: access to a property the member or handle does not
	// have, such as the shape of a nested signature member.
	KindAttribute
	// KindNotImplemented: a component declaring no members at all.
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindValue:
		return "value"
	case KindName:
		return "name"
	case KindAttribute:
		return "attribute"
	case KindNotImplemented:
		return "not implemented"
	}
	return "unknown"
}

// A UsageError reports a misuse of the declarative API. Declaration
// helpers like In, Out and the Member accessors panic with a
// *UsageError since such a failure is always a programming error in the
// design itself; operations that can fail at elaboration time return it
// instead.
//
type UsageError struct {
	Kind Kind
	Msg  string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrf(k Kind, format string, args ...interface{}) *UsageError {
	return &UsageError{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// A SignatureError reports an illegal structural operation on a members
// collection: inserting a duplicate name, inserting after a freeze, or
// looking up an undeclared member.
//
type SignatureError struct {
	Msg string
}

func (e *SignatureError) Error() string { return e.Msg }

func sigErrf(format string, args ...interface{}) *SignatureError {
	return &SignatureError{Msg: fmt.Sprintf(format, args...)}
}

// A ConnectionError reports a structural mismatch found by Connect. The
// message names the offending paths and handles. Connect never applies
// a partial connection: when it returns a ConnectionError, nothing has
// been added to the plan.
//
type ConnectionError struct {
	Msg string
	// Reasons holds the individual violations when the error aggregates
	// several, e.g. the outcome of a compliance check.
	Reasons []string
}

func (e *ConnectionError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Msg
	}
	return e.Msg + ":\n- " + strings.Join(e.Reasons, "\n- ")
}

func connErrf(format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Msg: fmt.Sprintf(format, args...)}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sigtest provides utility functions for testing designs built
// on sigwire.
//
package sigtest

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/db47h/sigwire"
)

// Compliant asserts that obj satisfies sig, reporting every violation
// on failure.
//
func Compliant(t *testing.T, sig *sigwire.Signature, obj sigwire.Attrs) {
	t.Helper()
	require.Empty(t, sig.Violations(obj), "object does not comply with %s", sig)
}

// MustConnect connects the given handles and returns the emitted
// assignments, failing the test on any connection error.
//
func MustConnect(t *testing.T, handles ...sigwire.NamedHandle) []sigwire.Assign {
	t.Helper()
	var plan sigwire.Plan
	require.NoError(t, sigwire.Connect(&plan, handles...))
	return plan.Assigns()
}

// AssignStrings renders assignments as "dst <= src" strings using the
// leaf names, for golden comparisons in tests.
//
func AssignStrings(assigns []sigwire.Assign) []string {
	out := make([]string, len(assigns))
	for i, a := range assigns {
		out[i] = a.Dst.Name() + " <= " + leafString(a.Src)
	}
	return out
}

func leafString(v sigwire.Value) string {
	switch v := v.(type) {
	case *sigwire.Signal:
		return v.Name()
	case *sigwire.Const:
		return strconv.FormatInt(v.Value(), 10)
	}
	return v.String()
}

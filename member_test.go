package sigwire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sw "github.com/db47h/sigwire"
)

// wantPanicKind runs f and checks that it panics with a usage error of
// the given kind.
func wantPanicKind(t *testing.T, k sw.Kind, f func()) {
	t.Helper()
	defer func() {
		e := recover()
		if e == nil {
			t.Fatal("expected a panic")
		}
		ue, ok := e.(*sw.UsageError)
		if !ok {
			t.Fatalf("expected a *UsageError, got %v", e)
		}
		if ue.Kind != k {
			t.Fatalf("expected a %s error, got %s: %s", k, ue.Kind, ue.Msg)
		}
	}()
	f()
}

func TestFlow_flip(t *testing.T) {
	require.Equal(t, sw.FlowIn, sw.FlowOut.Flip())
	require.Equal(t, sw.FlowOut, sw.FlowIn.Flip())
	require.Equal(t, sw.FlowOut, sw.FlowOut.Flip().Flip())
}

func TestMember_flipInvolution(t *testing.T) {
	td := []struct {
		name string
		m    sw.Member
	}{
		{"port", sw.Out(8)},
		{"port_reset", sw.In(sw.U(4)).WithReset(3)},
		{"array", sw.Out(1).Array(2, 3)},
		{"signature", sw.Out(sw.NewSignature(map[string]sw.Member{"x": sw.In(1)}))},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			require.True(t, d.m.Flip().Flip().Eq(d.m))
			require.Equal(t, d.m.Flow().Flip(), d.m.Flip().Flow())
		})
	}
}

func TestMember_arrayPrepends(t *testing.T) {
	a := sw.Out(1).Array(2).Array(3)
	b := sw.Out(1).Array(3, 2)
	require.Equal(t, []int{3, 2}, a.Dimensions())
	require.True(t, a.Eq(b))
}

func TestMember_construction(t *testing.T) {
	wantPanicKind(t, sw.KindType, func() { sw.Out("bogus") })
	wantPanicKind(t, sw.KindType, func() { sw.Out(-8) })
	wantPanicKind(t, sw.KindType, func() { sw.In(sw.U(-1)) })
	wantPanicKind(t, sw.KindType, func() { sw.Out((*sw.Signature)(nil)) })
	wantPanicKind(t, sw.KindType, func() { sw.Out(1).Array(-1) })
	wantPanicKind(t, sw.KindType, func() { sw.Out(2).WithReset(4) })

	inner := sw.NewSignature(map[string]sw.Member{"x": sw.Out(1)})
	wantPanicKind(t, sw.KindValue, func() { sw.Out(inner).WithReset(0) })
}

func TestMember_accessors(t *testing.T) {
	inner := sw.NewSignature(map[string]sw.Member{"x": sw.Out(1)})
	port := sw.Out(sw.S(4)).WithReset(-2)
	nested := sw.In(inner)

	require.Equal(t, sw.S(4), port.Shape())
	r, ok := port.Reset()
	require.True(t, ok)
	require.Equal(t, int64(-2), r)

	wantPanicKind(t, sw.KindAttribute, func() { port.Signature() })
	wantPanicKind(t, sw.KindAttribute, func() { nested.Shape() })
	wantPanicKind(t, sw.KindAttribute, func() { nested.Reset() })
}

// An In signature member presents its nested members with inverted
// polarity: its internals are the provider's outputs.
func TestMember_inSignatureIsFlipped(t *testing.T) {
	inner := sw.NewSignature(map[string]sw.Member{"x": sw.Out(1)})

	m, err := sw.In(inner).Signature().Members().Get("x")
	require.NoError(t, err)
	require.Equal(t, sw.FlowIn, m.Flow())

	m, err = sw.Out(inner).Signature().Members().Get("x")
	require.NoError(t, err)
	require.Equal(t, sw.FlowOut, m.Flow())
}

func TestMember_eq(t *testing.T) {
	td := []struct {
		name string
		a, b sw.Member
		eq   bool
	}{
		{"same", sw.Out(8), sw.Out(8), true},
		{"flow", sw.Out(8), sw.In(8), false},
		{"width", sw.Out(8), sw.Out(4), false},
		{"signedness", sw.Out(sw.U(8)), sw.Out(sw.S(8)), false},
		{"reset", sw.Out(8).WithReset(1), sw.Out(8), false},
		{"dims", sw.Out(8).Array(2), sw.Out(8).Array(3), false},
		{"payload", sw.Out(8), sw.Out(sw.NewSignature(nil)), false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			require.Equal(t, d.eq, d.a.Eq(d.b))
		})
	}
}

package sigwire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sw "github.com/db47h/sigwire"
)

func TestMembers_names(t *testing.T) {
	wantPanicKind(t, sw.KindName, func() {
		sw.NewMembers(map[string]sw.Member{"0bad": sw.Out(1)})
	})
	wantPanicKind(t, sw.KindName, func() {
		sw.NewMembers(map[string]sw.Member{"signature": sw.Out(1)})
	})
	wantPanicKind(t, sw.KindName, func() {
		sw.NewMembers(map[string]sw.Member{"a.b": sw.Out(1)})
	})

	ms := sw.NewMembers(map[string]sw.Member{"zz": sw.Out(1), "a": sw.In(1), "m_1": sw.Out(2)})
	require.Equal(t, []string{"a", "m_1", "zz"}, ms.Names())
}

func TestMembers_insertOnly(t *testing.T) {
	ms := sw.NewMembers(map[string]sw.Member{"a": sw.Out(1)})

	var sigErr *sw.SignatureError
	require.ErrorAs(t, ms.Set("a", sw.In(1)), &sigErr)

	var nameErr *sw.UsageError
	require.ErrorAs(t, ms.Set("bad name", sw.In(1)), &nameErr)
	require.Equal(t, sw.KindName, nameErr.Kind)

	_, err := ms.Get("b")
	require.ErrorAs(t, err, &sigErr)

	require.NoError(t, ms.Set("b", sw.In(4)))
	m, err := ms.Get("b")
	require.NoError(t, err)
	require.True(t, m.Eq(sw.In(4)))
}

func TestMembers_freeze(t *testing.T) {
	inner := sw.NewSignature(map[string]sw.Member{"x": sw.Out(1)})
	ms := sw.NewMembers(map[string]sw.Member{"a": sw.Out(1), "sub": sw.Out(inner)})

	require.False(t, ms.Frozen())
	ms.Freeze()
	require.True(t, ms.Frozen())
	// freezing recurses into nested signatures
	require.True(t, inner.Frozen())
	// and is idempotent
	ms.Freeze()

	var sigErr *sw.SignatureError
	require.ErrorAs(t, ms.Set("c", sw.In(1)), &sigErr)
	require.ErrorAs(t, inner.Members().Set("y", sw.In(1)), &sigErr)
}

func TestMembers_flipView(t *testing.T) {
	ms := sw.NewMembers(map[string]sw.Member{"a": sw.Out(8)})
	fv := ms.Flip()

	m, err := fv.Get("a")
	require.NoError(t, err)
	require.Equal(t, sw.FlowIn, m.Flow())

	// flipping twice yields the original polarity
	m, err = fv.Flip().Get("a")
	require.NoError(t, err)
	require.Equal(t, sw.FlowOut, m.Flow())

	// mutations through the flipped view are flipped and visible in the
	// underlying collection.
	require.NoError(t, fv.Set("b", sw.In(1)))
	m, err = ms.Get("b")
	require.NoError(t, err)
	require.Equal(t, sw.FlowOut, m.Flow())

	// and mutations of the underlying collection show up flipped.
	require.NoError(t, ms.Set("c", sw.Out(1)))
	m, err = fv.Get("c")
	require.NoError(t, err)
	require.Equal(t, sw.FlowIn, m.Flow())
}

// Flatten yields paths in strictly increasing lexicographic order
// regardless of how members were declared.
func TestMembers_flattenOrder(t *testing.T) {
	inner := sw.NewSignature(map[string]sw.Member{"x": sw.Out(1), "b": sw.In(2)})
	ms := sw.NewMembers(map[string]sw.Member{"a": sw.Out(inner)})
	require.NoError(t, ms.Set("ab", sw.Out(1)))
	require.NoError(t, ms.Set("a0", sw.Out(1)))

	flat := ms.Flatten()
	paths := make([]string, len(flat))
	for i, pm := range flat {
		paths[i] = pm.Path.String()
	}
	require.Equal(t, []string{"a", "a.b", "a.x", "a0", "ab"}, paths)
}

func TestMembers_eq(t *testing.T) {
	a := sw.NewMembers(map[string]sw.Member{"a": sw.Out(1), "b": sw.In(4)})
	b := sw.NewMembers(map[string]sw.Member{"a": sw.In(1), "b": sw.Out(4)})

	require.False(t, a.Eq(b))
	require.True(t, a.Eq(b.Flip()))
	require.True(t, a.Flip().Flip().Eq(a))

	c := sw.NewMembers(map[string]sw.Member{"a": sw.Out(1)})
	require.False(t, a.Eq(c))
}

// Nested named signatures keep their identity semantics: two
// collections wrapping distinct named signatures are unequal even when
// the inner member trees coincide, consistent with Member.Eq.
func TestMembers_eqNamedPayload(t *testing.T) {
	na := sw.NewNamedSignature("N", map[string]sw.Member{"x": sw.Out(1)})
	nb := sw.NewNamedSignature("N", map[string]sw.Member{"x": sw.Out(1)})

	a := sw.NewMembers(map[string]sw.Member{"s": sw.Out(na)})
	b := sw.NewMembers(map[string]sw.Member{"s": sw.Out(nb)})

	require.False(t, sw.Out(na).Eq(sw.Out(nb)))
	require.False(t, a.Eq(b))

	c := sw.NewMembers(map[string]sw.Member{"s": sw.Out(na)})
	require.True(t, a.Eq(c))
}

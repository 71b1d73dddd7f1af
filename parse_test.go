package sigwire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sw "github.com/db47h/sigwire"
)

func TestParseSignature(t *testing.T) {
	sig, err := sw.ParseSignature("out data[8], out valid, in ready")
	require.NoError(t, err)

	want := sw.NewSignature(map[string]sw.Member{
		"data":  sw.Out(8),
		"valid": sw.Out(1),
		"ready": sw.In(1),
	})
	require.True(t, sig.Eq(want))
}

func TestParseSignature_shapes(t *testing.T) {
	sig, err := sw.ParseSignature("out off[s16], in mode[2]=1")
	require.NoError(t, err)

	m, err := sig.Members().Get("off")
	require.NoError(t, err)
	require.Equal(t, sw.S(16), m.Shape())

	m, err = sig.Members().Get("mode")
	require.NoError(t, err)
	require.Equal(t, sw.U(2), m.Shape())
	r, ok := m.Reset()
	require.True(t, ok)
	require.Equal(t, int64(1), r)
}

func TestParseSignature_errors(t *testing.T) {
	td := []struct {
		name string
		spec string
	}{
		{"empty", ""},
		{"empty_entry", "out a,,in b"},
		{"no_flow", "a"},
		{"bad_flow", "inout a"},
		{"bad_width", "out a[x]"},
		{"unterminated", "out a[8"},
		{"bad_reset", "out a=x"},
		{"reset_overflow", "out a[2]=4"},
		{"bad_name", "out 0a"},
		{"reserved", "out signature"},
		{"duplicate", "out a, in a"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := sw.ParseSignature(d.spec)
			require.Error(t, err)
		})
	}
}

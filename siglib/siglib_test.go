package siglib_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sw "github.com/db47h/sigwire"
	"github.com/db47h/sigwire/siglib"
	"github.com/db47h/sigwire/sigtest"
)

func TestStream(t *testing.T) {
	stream := siglib.Stream(sw.U(8))
	require.Equal(t, "Stream", stream.Name())

	producer := stream.Create()
	consumer := stream.Flip().Create()
	sigtest.Compliant(t, stream, producer)
	sigtest.Compliant(t, stream.Flip(), consumer)

	as := sigtest.MustConnect(t,
		sw.Named("p", producer),
		sw.Named("c", consumer))
	require.Equal(t, []string{
		"payload <= payload",
		"ready <= ready",
		"valid <= valid",
	}, sigtest.AssignStrings(as))
}

func TestBus(t *testing.T) {
	bus := siglib.Bus(16, 32)

	m, err := bus.Members().Get("addr")
	require.NoError(t, err)
	require.Equal(t, sw.U(16), m.Shape())
	m, err = bus.Members().Get("rdata")
	require.NoError(t, err)
	require.Equal(t, sw.FlowIn, m.Flow())
	require.Equal(t, sw.U(32), m.Shape())

	initiator := bus.Create()
	target := bus.Flip().Create()
	as := sigtest.MustConnect(t,
		sw.Named("m", initiator),
		sw.Named("s", target))
	require.Len(t, as, 4)
}

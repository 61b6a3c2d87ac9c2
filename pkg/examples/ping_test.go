package examples

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPingRawBytesRoundTrip(t *testing.T) {
	p := Ping{MX: 210, MY: 115}
	require.Equal(t, []byte{210, 115}, p.RawBytes())

	var out Ping
	require.NoError(t, out.SetRawBytes(p.RawBytes()))
	require.Equal(t, p, out)
}

func TestPingSetRawBytesRejectsWrongLength(t *testing.T) {
	var p Ping
	require.Error(t, p.SetRawBytes([]byte{1}))
	require.Error(t, p.SetRawBytes([]byte{1, 2, 3}))
}

func TestPongEchoesPing(t *testing.T) {
	p := Ping{MX: 1, MY: 2}
	pong := Pong{Echoed: p}

	var out Pong
	require.NoError(t, out.SetRawBytes(pong.RawBytes()))
	require.Equal(t, p, out.Echoed)
}

package hce

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregLibert/hce/pkg/tlv"
)

func TestQueue_DropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	for i := 0; i < 5; i++ {
		q.Notify(Notification{Port: Port(i)})
	}

	assert.Equal(t, uint64(3), q.Dropped())
	assert.Equal(t, Port(0), (<-q.C()).Port)
	assert.Equal(t, Port(1), (<-q.C()).Port)
}

func TestQueue_Close(t *testing.T) {
	q := NewQueue(0)
	q.Notify(Notification{Port: 1})

	q.Close()
	q.Close()
	q.Notify(Notification{Port: 2})

	assert.Equal(t, uint64(1), q.Dropped())

	n, ok := <-q.C()
	require.True(t, ok, "pending notification lost on Close")
	assert.Equal(t, Port(1), n.Port)

	_, ok = <-q.C()
	assert.False(t, ok, "channel still open after Close")
}

func TestNotifierFunc(t *testing.T) {
	var got []Notification
	var n Notifier = NotifierFunc(func(x Notification) { got = append(got, x) })

	n.Notify(Notification{Port: 4})
	require.Len(t, got, 1)
	assert.Equal(t, Port(4), got[0].Port)
}

func TestNotificationEncoding(t *testing.T) {
	in := Notification{
		Port:   5,
		Header: tlv.Hex("00 A4 04 05 07 A0 00 DA DA DA DA DA"),
		Data:   tlv.Hex("01 02"),
	}

	raw, err := EncodeNotification(in)
	require.NoError(t, err)

	// Integer keys: {1: 5, 2: h'..', 3: h'0102'}
	assert.Equal(t, byte(0xA3), raw[0])

	out, err := DecodeNotification(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestNotificationEncoding_OmitsEmptyData(t *testing.T) {
	raw, err := EncodeNotification(Notification{Port: 1, Header: tlv.Hex("00 A4 04 01 05")})
	require.NoError(t, err)
	assert.Equal(t, byte(0xA2), raw[0])
}

func TestDecodeNotification_Invalid(t *testing.T) {
	_, err := DecodeNotification(tlv.Hex("FF"))
	assert.Error(t, err)
}

func TestStream_RoundTrip(t *testing.T) {
	q := NewQueue(4)
	sent := []Notification{
		{Port: 1, Header: tlv.Hex("00 A4 04 01 05 A0 00 00 00 01")},
		{Port: 2, Header: tlv.Hex("00 A4 04 02 05 A0 00 00 00 01"), Data: tlv.Hex("00")},
	}
	for _, n := range sent {
		q.Notify(n)
	}
	q.Close()

	var buf bytes.Buffer
	require.NoError(t, NewStreamWriter(&buf).Run(context.Background(), q.C()))

	r := NewStreamReader(&buf)
	for i, want := range sent {
		got, err := r.Next()
		require.NoError(t, err, "notification %d", i)
		assert.Equal(t, want, got)
	}

	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamWriter_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStreamWriter(io.Discard).Run(ctx, make(chan Notification))
	assert.True(t, errors.Is(err, context.Canceled), "Run() error = %v", err)
}

package stream_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/core/stream"
	"github.com/Aditya1404Sal/openai-component/fake"
)

func TestStreamYieldsChunksInOrderThenEnds(t *testing.T) {
	in := fake.NewInputStream().
		PushData([]byte("alpha")).
		PushData([]byte("beta")).
		PushNotReady().
		PushData([]byte("gamma")).
		PushClosed()
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	for _, want := range []string{"alpha", "beta", "gamma"} {
		chunk, err := bs.Next()
		require.NoError(t, err)
		assert.Equal(t, want, string(chunk))
	}

	_, err = bs.Next()
	assert.ErrorIs(t, err, io.EOF, "absent trailers end the sequence with no error")

	assert.Equal(t, 1, in.Subscriptions, "one suspension for the not-ready read")
	assert.Equal(t, 1, in.Closes)
	assert.Equal(t, 1, body.FinishCount)
}

func TestStreamTrailerErrorAfterTwoChunks(t *testing.T) {
	in := fake.NewInputStream().
		PushData([]byte("one")).
		PushData([]byte("two")).
		PushClosed()
	body := fake.NewIncomingBody(in)
	body.Trailers.Err = errors.New("malformed trailers")
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	for _, want := range []string{"one", "two"} {
		chunk, err := bs.Next()
		require.NoError(t, err)
		assert.Equal(t, want, string(chunk))
	}

	_, err = bs.Next()
	var protoErr *api.ProtocolError
	require.ErrorAs(t, err, &protoErr, "trailer failure yields exactly one error item")

	_, err = bs.Next()
	assert.ErrorIs(t, err, io.EOF, "the sequence ends after the error item")
	assert.Equal(t, 1, body.FinishCount)
}

func TestStreamWaitsForUnresolvedTrailers(t *testing.T) {
	in := fake.NewInputStream().PushData([]byte("data")).PushClosed()
	body := fake.NewIncomingBody(in)
	body.Trailers.PendingPolls = 2
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	chunk, err := bs.Next()
	require.NoError(t, err)
	assert.Equal(t, "data", string(chunk))

	_, err = bs.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, body.Trailers.Subscriptions,
		"one registration per unresolved trailer poll")
}

func TestStreamPresentTrailersCloseLikeAbsentOnes(t *testing.T) {
	in := fake.NewInputStream().PushData([]byte("payload")).PushClosed()
	body := fake.NewIncomingBody(in)
	body.Trailers.Trailers = api.Trailers{"x-checksum": {"abc"}}
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	data, err := bs.Collect()
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestStreamReadErrorYieldsSingleErrorItem(t *testing.T) {
	in := fake.NewInputStream().
		PushData([]byte("partial")).
		PushError(errors.New("connection lost"))
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	chunk, err := bs.Next()
	require.NoError(t, err)
	assert.Equal(t, "partial", string(chunk))

	_, err = bs.Next()
	var ioErr *api.IOError
	require.ErrorAs(t, err, &ioErr)

	_, err = bs.Next()
	assert.ErrorIs(t, err, io.EOF)

	// The failed stream never left the data phase; Close must finalize.
	require.NoError(t, bs.Close())
	assert.Equal(t, 1, in.Closes)
	assert.Equal(t, 1, body.FinishCount)
}

func TestStreamEarlyCloseFinalizesOnce(t *testing.T) {
	in := fake.NewInputStream().
		PushData([]byte("first")).
		PushData([]byte("never read")).
		PushClosed()
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	_, err = bs.Next()
	require.NoError(t, err)

	// Cancellation mid-read.
	require.NoError(t, bs.Close())
	require.NoError(t, bs.Close())
	assert.Equal(t, 1, in.Closes)
	assert.Equal(t, 1, body.FinishCount, "never zero, never twice")

	_, err = bs.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamCloseAfterNormalEndDoesNotDoubleFinalize(t *testing.T) {
	in := fake.NewInputStream().PushData([]byte("x")).PushClosed()
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	_, err = bs.Collect()
	require.NoError(t, err)

	require.NoError(t, bs.Close())
	assert.Equal(t, 1, body.FinishCount)
	assert.Equal(t, 1, in.Closes)
}

func TestStreamBoundsReadsAtReadSize(t *testing.T) {
	big := bytes.Repeat([]byte{'z'}, stream.ReadSize+1024)
	in := fake.NewInputStream().PushData(big).PushClosed()
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	first, err := bs.Next()
	require.NoError(t, err)
	assert.Len(t, first, stream.ReadSize)

	second, err := bs.Next()
	require.NoError(t, err)
	assert.Len(t, second, 1024)

	data := append(first, second...)
	assert.Equal(t, big, data)
}

func TestStreamZeroLengthReadIsNotEndOfData(t *testing.T) {
	in := fake.NewInputStream().
		PushNotReady().
		PushNotReady().
		PushData([]byte("late")).
		PushClosed()
	body := fake.NewIncomingBody(in)
	exec := newExec()

	bs, err := stream.NewBodyStream(exec, body)
	require.NoError(t, err)

	chunk, err := bs.Next()
	require.NoError(t, err)
	assert.Equal(t, "late", string(chunk))
	assert.Equal(t, 2, in.Subscriptions)
}

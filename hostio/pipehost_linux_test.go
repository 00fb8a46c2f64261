//go:build linux
// +build linux

package hostio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya1404Sal/openai-component/core/sched"
	"github.com/Aditya1404Sal/openai-component/core/stream"
	"github.com/Aditya1404Sal/openai-component/hostio"
	"github.com/Aditya1404Sal/openai-component/reactor"
)

func TestPipeHostRoundTrip(t *testing.T) {
	out, in, err := hostio.NewPipe()
	require.NoError(t, err)

	exec := sched.New(reactor.NewRegistry(), hostio.FDPoller{})

	sink, err := stream.NewBodySink(exec, out)
	require.NoError(t, err)
	bs, err := stream.NewBodyStream(exec, in)
	require.NoError(t, err)
	defer bs.Close()

	var sent []byte
	for i := 0; i < 4; i++ {
		chunk := bytes.Repeat([]byte{byte('a' + i)}, 8*1024)
		require.NoError(t, sink.Send(chunk))
		sent = append(sent, chunk...)
	}
	// Closing the write end is the pipe's end-of-data signal.
	require.NoError(t, sink.Close())

	received, err := bs.Collect()
	require.NoError(t, err)
	assert.Equal(t, sent, received)
}

func TestPipeHostReadinessReflectsPipeState(t *testing.T) {
	out, in, err := hostio.NewPipe()
	require.NoError(t, err)

	inStream, err := in.Stream()
	require.NoError(t, err)
	outStream, err := out.Stream()
	require.NoError(t, err)

	assert.False(t, inStream.Subscribe().Ready(), "empty pipe is not readable")
	assert.True(t, outStream.Subscribe().Ready(), "empty pipe is writable")

	require.NoError(t, outStream.Write([]byte("wake")))
	assert.True(t, inStream.Subscribe().Ready(), "written pipe is readable")

	require.NoError(t, outStream.Close())
	require.NoError(t, inStream.Close())
}

func TestPipeHostSmallReadsSplitChunks(t *testing.T) {
	out, in, err := hostio.NewPipe()
	require.NoError(t, err)

	outStream, err := out.Stream()
	require.NoError(t, err)
	require.NoError(t, outStream.Write([]byte("abcdef")))

	inStream, err := in.Stream()
	require.NoError(t, err)

	first, err := inStream.Read(4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(first))

	second, err := inStream.Read(4)
	require.NoError(t, err)
	assert.Equal(t, "ef", string(second))

	// Nothing buffered and the writer is still open: not ready, not closed.
	empty, err := inStream.Read(4)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, outStream.Close())
	require.NoError(t, inStream.Close())
}

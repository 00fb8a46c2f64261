package dispatch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/core/dispatch"
	"github.com/Aditya1404Sal/openai-component/core/sched"
	"github.com/Aditya1404Sal/openai-component/fake"
	"github.com/Aditya1404Sal/openai-component/reactor"
)

func newBridge(future *fake.ResponseFuture) (*dispatch.Bridge, *fake.Client, *fake.Poller) {
	poller := fake.NewPoller()
	exec := sched.New(reactor.NewRegistry(), poller)
	client := fake.NewClient(future)
	return dispatch.New(exec, client), client, poller
}

func TestRoundTripResolvesAfterPendingPolls(t *testing.T) {
	future := &fake.ResponseFuture{
		PendingPolls: 3,
		Response:     &fake.Response{StatusCode: 200},
	}
	bridge, client, poller := newBridge(future)

	req, err := client.NewRequest(api.RequestSpec{Method: "POST"})
	require.NoError(t, err)

	resp, err := bridge.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status())
	assert.Equal(t, 3, future.Subscriptions,
		"exactly one readiness registration per unresolved poll")
	assert.Equal(t, 3, poller.Rounds)
}

func TestRoundTripImmediateResolutionRegistersNothing(t *testing.T) {
	future := &fake.ResponseFuture{Response: &fake.Response{StatusCode: 204}}
	bridge, client, poller := newBridge(future)

	req, err := client.NewRequest(api.RequestSpec{Method: "GET"})
	require.NoError(t, err)

	resp, err := bridge.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.Status())
	assert.Equal(t, 0, future.Subscriptions)
	assert.Equal(t, 0, poller.Rounds)
}

func TestRoundTripSurfacesProtocolErrorAsIs(t *testing.T) {
	wantErr := &api.ProtocolError{Reason: "dns failure"}
	future := &fake.ResponseFuture{PendingPolls: 1, Err: wantErr}
	bridge, client, _ := newBridge(future)

	req, err := client.NewRequest(api.RequestSpec{Method: "POST"})
	require.NoError(t, err)

	_, err = bridge.RoundTrip(req)
	assert.ErrorIs(t, err, wantErr, "terminal error passes through unchanged, no retry")
}

func TestRoundTripWrapsImmediateSendFailure(t *testing.T) {
	bridge, client, _ := newBridge(nil)
	client.SendErr = errors.New("handle rejected")

	req, err := client.NewRequest(api.RequestSpec{Method: "POST"})
	require.NoError(t, err)

	_, err = bridge.RoundTrip(req)
	var protoErr *api.ProtocolError
	require.ErrorAs(t, err, &protoErr)
}

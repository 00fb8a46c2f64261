//go:build !linux
// +build !linux

// File: hostio/pipehost_stub.go
//
// Non-Linux stub for the fd pipe binding.

package hostio

import (
	"errors"

	"github.com/Aditya1404Sal/openai-component/api"
)

// ErrUnsupportedPlatform reports that the fd binding needs Linux.
var ErrUnsupportedPlatform = errors.New("hostio: fd pipe host requires linux")

// FDPoller is unavailable on this platform.
type FDPoller struct{}

// Poll implements api.Poller.
func (FDPoller) Poll(sources []api.Pollable) ([]int, error) {
	return nil, ErrUnsupportedPlatform
}

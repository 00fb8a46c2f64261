// Package hostio provides concrete hosts for the engine's capability
// contract: an in-process binding over net/http and a Linux binding over
// non-blocking file descriptors with poll(2) as the multi-wait.
//
// Host internals may use goroutines; the engine itself stays cooperative
// and single-threaded. All host-side completion funnels into readiness
// sources observed through the blocking multi-wait.
package hostio

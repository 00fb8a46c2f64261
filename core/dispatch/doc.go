// Package dispatch bridges a prepared request to its resolved response,
// suspending on the response future's readiness source while the host
// works. A dispatch is issued once; there is no retry tier.
package dispatch

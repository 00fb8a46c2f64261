// Package sched drives one cooperative computation to completion by
// alternating progress steps with blocking multi-waits over the readiness
// registry. Scheduling is single-threaded; nothing in this package runs in
// parallel. The best practice is not to block inside a step.
package sched

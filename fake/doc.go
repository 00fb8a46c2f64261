// Package fake provides scripted in-memory implementations of the host
// capability contract in package api. Capacity schedules, read scripts and
// finalize counters give tests predictable, controllable host behavior.
package fake

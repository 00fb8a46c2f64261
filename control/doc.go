// Package control carries the operational surface of the component:
// configuration loading, logging setup and Prometheus metrics.
package control

// Package buffer recycles per-goroutine float64 scratch space between
// processing runs. A Scratch is a set of zeroed rows, each with its own
// length, drawn from a Pool and returned to it when the run ends.
package buffer

// Package storeframe turns a decoded wire message into a store write-frame:
// a mapping from channel name to value. It is pure aside from reading the
// wall clock for the write-time stamp, which callers inject so tests can
// control it.
package storeframe

// Package collector implements the remote delivery sink.
//
// A collector.Sink holds one persistent framed connection to a
// log-collection daemon and ships each line as a single request/response
// exchange. The design goals, in order:
//
//  1. Never crash or block the instrumented application: connection
//     failures are swallowed, reported through the status reporter, and
//     the line is dropped.
//  2. Never hammer a down collector: reconnection attempts are throttled
//     by the retry interval.
//  3. Never share a connection across a fork: the process ID is checked
//     on every call.
//
// Size triage applies before delivery: lines over the warning threshold
// additionally produce an origin report on a diagnostic stream, and lines
// over the maximum are rejected outright.
package collector

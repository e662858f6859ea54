// Package interview implements structured questioning over the topic
// registry: next-question selection by priority, response recording with
// atomic topic retirement, and the explicit re-open operation used when a
// reviewer requests more questioning after full coverage.
package interview

// Package gateway manages the TLS session to a KLF200 gateway and runs
// command transactions over it.
//
// The gateway multiplexes unsolicited notifications onto the same stream
// as request confirmations, so a frame read while one transaction is in
// flight may belong to another consumer. Frames that a transaction does
// not accept are parked in a response queue where other consumers can
// pick them up later.
//
// # Layers
//
//   - Transport: raw SLIP frame delivery over TLS
//   - ResponseQueue: parked frames with per-consumer delivery tracking
//   - Connection: connect/settle/retry policy around one Transport
//   - Executor: drives a Transaction's handshake to completion
//
// # Failure Policy
//
// A failure to establish the TLS connection is fatal and reported
// immediately. Send and receive failures on an established connection are
// retried with exponential backoff up to a configured bound; only after
// the bound is exhausted does the error become fatal. Malformed frames
// and protocol anomalies never kill the connection, they finish the
// affected transaction unsuccessfully at worst.
package gateway

package gateway

import "fmt"

// ConnectError reports a failure to establish the TLS connection to the
// gateway. Connect failures are fatal, they are not retried.
type ConnectError struct {
	Host string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connecting to gateway %s: %v", e.Host, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IOError reports a send or receive failure on an established
// connection. I/O failures are retryable.
type IOError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// RetriesExhaustedError reports that an I/O exchange kept failing until
// the configured retry bound was reached.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("gateway unreachable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}

package gateway

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/logging"
)

// Transport delivers raw SLIP frames to and from the gateway.
type Transport interface {
	// Connect establishes the underlying connection.
	Connect(ctx context.Context) error
	// Send writes one complete SLIP frame.
	Send(frame []byte) error
	// Receive blocks until one complete SLIP frame arrives, delimiters
	// included.
	Receive() ([]byte, error)
	// Available reports whether bytes are waiting to be read, polling
	// for at most the given duration. A non-nil error means the
	// connection is unusable, not merely idle.
	Available(wait time.Duration) (bool, error)
	// IsReady reports whether the transport is connected.
	IsReady() bool
	// Close tears the connection down. Closing a closed transport is a
	// no-op.
	Close() error
}

const slipEnd = 0xC0

// TLSTransport talks to the gateway over TLS on its default port 51200.
// The gateway ships a self-signed certificate, so verification is
// disabled.
type TLSTransport struct {
	host    string
	port    int
	timeout time.Duration

	mu     sync.Mutex
	conn   *tls.Conn
	reader *bufio.Reader
}

// NewTLSTransport returns an unconnected transport for the given
// endpoint. timeout bounds every single read and write.
func NewTLSTransport(host string, port int, timeout time.Duration) *TLSTransport {
	return &TLSTransport{host: host, port: port, timeout: timeout}
}

func (t *TLSTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return nil
	}

	addr := net.JoinHostPort(t.host, fmt.Sprintf("%d", t.port))
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: t.timeout},
		Config: &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS10,
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	t.conn = conn.(*tls.Conn)
	t.reader = bufio.NewReader(t.conn)
	logging.LogConnection(addr, "connected")
	return nil
}

func (t *TLSTransport) Send(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return &IOError{Op: "send", Err: net.ErrClosed}
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return &IOError{Op: "send", Err: err}
	}
	if _, err := t.conn.Write(frame); err != nil {
		return &IOError{Op: "send", Err: err}
	}
	logging.LogRawBytes("frame sent", frame)
	return nil
}

// Receive reads one SLIP frame. Bytes before the opening delimiter are
// discarded so the reader resynchronizes after line noise.
func (t *TLSTransport) Receive() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil, &IOError{Op: "receive", Err: net.ErrClosed}
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, &IOError{Op: "receive", Err: err}
	}

	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			return nil, &IOError{Op: "receive", Err: err}
		}
		if b == slipEnd {
			break
		}
	}

	frame := []byte{slipEnd}
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			return nil, &IOError{Op: "receive", Err: err}
		}
		frame = append(frame, b)
		if b == slipEnd {
			break
		}
	}
	logging.LogRawBytes("frame received", frame)
	return frame, nil
}

func (t *TLSTransport) Available(wait time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return false, nil
	}
	if t.reader.Buffered() > 0 {
		return true, nil
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(wait)); err != nil {
		return false, &IOError{Op: "receive", Err: err}
	}
	if _, err := t.reader.Peek(1); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return false, nil
		}
		logging.Debug("availability probe failed", zap.Error(err))
		return false, &IOError{Op: "receive", Err: err}
	}
	return true, nil
}

func (t *TLSTransport) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

func (t *TLSTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.reader = nil
	logging.LogConnection(net.JoinHostPort(t.host, fmt.Sprintf("%d", t.port)), "closed")
	return err
}

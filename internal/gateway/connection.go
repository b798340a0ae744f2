package gateway

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/logging"
)

// Config carries the connection policy for one gateway.
type Config struct {
	Host string
	Port int
	// Timeout bounds every single read and write on the wire.
	Timeout time.Duration
	// Settle is how long to wait after each send before reading the
	// response. The gateway needs a moment to process a request.
	Settle time.Duration
	// BackoffBase is the first retry delay. It doubles on every
	// further attempt.
	BackoffBase time.Duration
	// Retries bounds how often a failed exchange is re-attempted.
	Retries int
}

// DefaultPort is the TLS port the KLF200 listens on.
const DefaultPort = 51200

// Connection wraps one Transport with the connect, settle and retry
// policy and owns the response queue shared by all consumers.
type Connection struct {
	cfg       Config
	transport Transport
	queue     *ResponseQueue

	mu             sync.Mutex
	lastAttempt    time.Time
	lastSuccessful time.Time
}

// NewConnection returns an unconnected Connection. The transport is
// dialed lazily on the first exchange.
func NewConnection(cfg Config, transport Transport) *Connection {
	return &Connection{
		cfg:       cfg,
		transport: transport,
		queue:     NewResponseQueue(),
	}
}

// Queue returns the response queue shared by all consumers of this
// connection.
func (c *Connection) Queue() *ResponseQueue {
	return c.queue
}

// IsAlive reports whether the transport is currently connected.
func (c *Connection) IsAlive() bool {
	return c.transport.IsReady()
}

// LastCommunication returns when the last exchange was attempted.
func (c *Connection) LastCommunication() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAttempt
}

// LastSuccessfulCommunication returns when the last exchange succeeded.
func (c *Connection) LastSuccessfulCommunication() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSuccessful
}

// ResetConnection closes the transport and drops all parked frames.
// The next exchange reconnects.
func (c *Connection) ResetConnection() {
	c.closeTransport()
	c.queue.PurgeAll()
}

// IsMessageAvailable reports whether a frame is deliverable to the
// given consumer, either parked in the queue or waiting on the wire.
// An I/O error while probing the wire resets the connection and
// reports "not available" instead of propagating.
func (c *Connection) IsMessageAvailable(id ConsumerID) bool {
	if !c.queue.IsEmptyFor(id) {
		return true
	}
	if !c.transport.IsReady() {
		return false
	}
	avail, err := c.transport.Available(c.cfg.BackoffBase)
	if err != nil {
		logging.Warn("availability probe failed, resetting connection", zap.Error(err))
		c.ResetConnection()
		return false
	}
	return avail
}

// FlagHandshakeAsProcessed ends a consumer's handshake: its consumption
// marks are cleared and stale parked frames are purged.
func (c *Connection) FlagHandshakeAsProcessed(id ConsumerID) {
	c.queue.ResetConsumption(id)
}

// IO performs one exchange: it sends the request frame if one is given,
// waits the settle delay, and returns one response frame. After the
// send a frame parked for this consumer takes precedence over the wire;
// such a frame stays in the queue until the caller removes it.
//
// Connect failures are fatal. Send and receive failures close the
// transport and are retried with exponential backoff up to the
// configured bound, after which a RetriesExhaustedError is returned.
// Parked frames survive the retries, only the socket is torn down.
func (c *Connection) IO(ctx context.Context, id ConsumerID, request []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.BackoffBase * time.Duration(1<<uint(attempt-1))
			logging.Info("retrying exchange",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := sleepContext(ctx, delay); err != nil {
				return nil, err
			}
		}

		if !c.transport.IsReady() {
			if err := c.transport.Connect(ctx); err != nil {
				return nil, &ConnectError{Host: c.cfg.Host, Err: err}
			}
		}

		c.flagCommunication()
		if len(request) > 0 {
			if err := c.transport.Send(request); err != nil {
				lastErr = err
				logging.Warn("send failed", zap.Error(err))
				c.closeTransport()
				continue
			}
			if c.cfg.Settle > 0 {
				logging.Debug("settling after send", zap.Duration("settle", c.cfg.Settle))
				if err := sleepContext(ctx, c.cfg.Settle); err != nil {
					c.closeTransport()
					return nil, err
				}
			}
		}

		if frame, ok := c.queue.PeekUnconsumed(id); ok {
			return frame, nil
		}

		frame, err := c.transport.Receive()
		if err != nil {
			lastErr = err
			logging.Warn("receive failed", zap.Error(err))
			c.closeTransport()
			continue
		}
		c.flagSuccessfulCommunication()
		return frame, nil
	}
	c.closeTransport()
	return nil, &RetriesExhaustedError{Attempts: c.cfg.Retries + 1, Last: lastErr}
}

func (c *Connection) closeTransport() {
	if err := c.transport.Close(); err != nil {
		logging.Warn("closing transport", zap.Error(err))
	}
}

func (c *Connection) flagCommunication() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAttempt = time.Now()
}

func (c *Connection) flagSuccessfulCommunication() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSuccessful = time.Now()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

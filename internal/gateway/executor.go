package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
	"github.com/muurk/klf200/internal/protocol"
)

// Transaction is one gateway operation with its request layout and
// handshake interpretation. Implementations live in the commands
// package.
type Transaction interface {
	// Name identifies the transaction in logs.
	Name() string
	// RequestCommand returns the command code to send and resets the
	// handshake. A pseudo-command means nothing is sent.
	RequestCommand() klfapi.Command
	// RequestData returns the request payload.
	RequestData() []byte
	// ConsumeResponse offers one decoded response frame. It reports
	// whether the frame was accepted as part of this handshake.
	ConsumeResponse(cmd klfapi.Command, data []byte) bool
	// IsFinished reports whether the handshake reached a terminal
	// state.
	IsFinished() bool
	// IsSuccessful reports whether the finished handshake succeeded.
	IsSuccessful() bool
}

// Executor drives transactions over one Connection.
type Executor struct {
	conn *Connection
}

// NewExecutor returns an Executor bound to the given connection.
func NewExecutor(conn *Connection) *Executor {
	return &Executor{conn: conn}
}

// Connection returns the underlying connection.
func (e *Executor) Connection() *Connection {
	return e.conn
}

// Run drives one transaction to completion and reports whether it
// finished successfully. The request is encoded, sent once, and
// response frames are fed to the transaction until it reaches a
// terminal state. Frames the transaction rejects are parked for other
// consumers; accepted frames are removed from the queue.
//
// An error is returned only when the transport is unusable: a connect
// failure, retries exhausted, or context cancellation.
func (e *Executor) Run(ctx context.Context, tx Transaction) (bool, error) {
	id := NextConsumerID()

	cmd := tx.RequestCommand()
	if cmd == klfapi.CmdShutdown {
		e.conn.ResetConnection()
		return true, nil
	}

	var request []byte
	if cmd.IsWireCommand() {
		request = protocol.SlipEncode(protocol.EncodeFrame(int16(cmd), tx.RequestData()))
		logging.LogFrame("sending", cmd.String(), tx.RequestData())
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		frame, err := e.conn.IO(ctx, id, request)
		if err != nil {
			return false, err
		}
		request = nil

		respCmd, data, err := decodeResponse(frame)
		if err != nil {
			logging.Warn("discarding malformed frame",
				zap.String("transaction", tx.Name()),
				zap.Error(err),
			)
			e.conn.Queue().Remove(frame)
		} else {
			logging.LogFrame("received", respCmd.String(), data)
			if tx.ConsumeResponse(respCmd, data) {
				e.conn.Queue().Remove(frame)
			} else {
				e.conn.Queue().PushBack(id, frame)
			}
		}

		if tx.IsFinished() {
			break
		}
	}

	e.conn.FlagHandshakeAsProcessed(id)
	ok := tx.IsSuccessful()
	logging.LogTransaction(tx.Name(), true, ok)
	return ok, nil
}

func decodeResponse(frame []byte) (klfapi.Command, []byte, error) {
	raw, err := protocol.SlipDecode(frame)
	if err != nil {
		return klfapi.CmdUnknown, nil, err
	}
	code, data, err := protocol.DecodeFrame(raw)
	if err != nil {
		return klfapi.CmdUnknown, nil, err
	}
	cmd := klfapi.Command(code)
	if !klfapi.Known(cmd) {
		logging.Warn("response with unknown command code", zap.Stringer("command", cmd))
	}
	return cmd, data, nil
}

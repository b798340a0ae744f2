// Package commands implements the KLF200 command transactions.
//
// Each transaction type covers one logical gateway operation (login, run
// scene, retrieve scenes, ...) and owns everything needed for its
// handshake: the outgoing request layout, a declarative state table naming
// the command codes acceptable in each handshake state, a per-instance
// session id counter, and the interpretation of every confirmation and
// notification frame in the chain.
//
// # Handshake
//
// A handshake moves through a small state space:
//
//	Idle → WaitConfirm → WaitNotify → WaitNotify2 → WaitFinish
//
// Not every transaction visits every state; the per-type state table
// defines which incoming command codes are acceptable where. A frame that
// is not acceptable in the current state is rejected without touching the
// transaction's terminal flags, so the caller can offer it to another
// pending transaction.
//
// # Outcome
//
// Two flags form the transaction sub-state: unfinished,
// finished-but-failed, and finished-successfully. Any payload length
// mismatch, session id mismatch or unhandled command code finishes the
// transaction unsuccessfully; none of these are fatal to the connection.
//
// # Usage Example
//
//	login := commands.NewLogin(password)
//	ok, err := executor.Run(ctx, login)
package commands

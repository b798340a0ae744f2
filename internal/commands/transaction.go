package commands

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/klfapi"
	"github.com/muurk/klf200/internal/logging"
)

// result holds the two terminal flags shared by every transaction.
// The three meaningful combinations are unfinished, finished-but-failed
// and finished-successfully.
type result struct {
	finished   bool
	successful bool
}

func (r *result) reset() {
	r.finished = false
	r.successful = false
}

func (r *result) finishFailed() {
	r.finished = true
	r.successful = false
}

func (r *result) finishOK() {
	r.finished = true
	r.successful = true
}

// IsFinished reports whether the handshake reached a terminal state.
func (r *result) IsFinished() bool {
	return r.finished
}

// IsSuccessful reports whether the finished handshake succeeded.
func (r *result) IsSuccessful() bool {
	return r.successful
}

// sessionID is the 16-bit correlation id embedded in session-oriented
// requests. Each transaction instance seeds its own counter so
// concurrent transactions stay distinguishable on the wire.
type sessionID struct {
	value int
}

func newSessionID() sessionID {
	return sessionID{value: rand.Intn(0x1000)}
}

// next advances the counter and returns the id to embed in the
// outgoing request. The counter wraps to zero at 0xFFFF, the all-ones
// id is never issued.
func (s *sessionID) next() int {
	s.value = (s.value + 1) % 0xFFFF
	return s.value
}

func (s *sessionID) current() int {
	return s.value
}

// matches checks a response's session id against the transaction's
// current one, logging both values on mismatch.
func (s *sessionID) matches(name string, got int) bool {
	if got != s.value {
		logging.Warn("session id mismatch",
			zap.String("transaction", name),
			zap.Int("want", s.value),
			zap.Int("got", got),
		)
		return false
	}
	return true
}

// hasLength checks a response payload against the fixed length the
// command defines. A mismatch is logged and the transaction must finish
// unsuccessfully.
func hasLength(name string, cmd klfapi.Command, data []byte, want int) bool {
	if len(data) != want {
		logging.Warn("response length mismatch",
			zap.String("transaction", name),
			zap.Stringer("command", cmd),
			zap.Int("want", want),
			zap.Int("got", len(data)),
		)
		return false
	}
	return true
}

// logUnhandled records a command that passed the state table but has no
// handler branch. That combination is a programming defect.
func logUnhandled(name string, cmd klfapi.Command) {
	logging.Error("accepted command without handler",
		zap.String("transaction", name),
		zap.Stringer("command", cmd),
	)
}

// Session-oriented commands identify as stand-alone automatic controls
// (SAAC) at Comfort Level 2 priority.
const (
	originatorSAAC        = 8
	priorityComfortLevel2 = 5
)

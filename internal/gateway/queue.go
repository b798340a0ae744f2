package gateway

import (
	"bytes"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/muurk/klf200/internal/logging"
)

// ConsumerID identifies one consumption context on the response queue.
// Each transaction run allocates its own id so a parked frame is
// delivered at most once per consumer but stays visible to others.
type ConsumerID uint64

var consumerSeq atomic.Uint64

// NextConsumerID allocates a fresh consumer id.
func NextConsumerID() ConsumerID {
	return ConsumerID(consumerSeq.Add(1))
}

// usagePurgeThreshold is the number of deliveries after which a parked
// frame is considered stale and dropped. A frame that has been offered
// this often without anyone consuming it has no taker.
const usagePurgeThreshold = 10

type parkedFrame struct {
	frame  []byte
	seenBy map[ConsumerID]struct{}
	usage  int
}

// ResponseQueue parks response frames that arrived for a consumer other
// than the one currently reading the wire. Frames are deduplicated on
// enqueue by byte equality and auto-purged once they have been offered
// more than usagePurgeThreshold times.
type ResponseQueue struct {
	mu     sync.Mutex
	frames []*parkedFrame
}

// NewResponseQueue returns an empty queue.
func NewResponseQueue() *ResponseQueue {
	return &ResponseQueue{}
}

// Enqueue parks a frame. A frame byte-equal to one already parked is
// dropped so repeated gateway notifications do not pile up.
func (q *ResponseQueue) Enqueue(frame []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueueLocked(frame, nil)
}

// PushBack parks a frame that the given consumer has already seen and
// rejected. The frame stays deliverable to every other consumer.
func (q *ResponseQueue) PushBack(id ConsumerID, frame []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueueLocked(frame, &id)
}

func (q *ResponseQueue) enqueueLocked(frame []byte, seen *ConsumerID) {
	for _, pf := range q.frames {
		if bytes.Equal(pf.frame, frame) {
			if seen != nil {
				pf.seenBy[*seen] = struct{}{}
			}
			return
		}
	}
	pf := &parkedFrame{
		frame:  frame,
		seenBy: make(map[ConsumerID]struct{}),
	}
	if seen != nil {
		pf.seenBy[*seen] = struct{}{}
	}
	q.frames = append(q.frames, pf)
	logging.Debug("frame parked", zap.Int("length", len(frame)), zap.Int("queued", len(q.frames)))
}

// PeekUnconsumed returns the oldest parked frame the given consumer has
// not seen yet and marks it seen. The frame stays in the queue until it
// is removed or purged. Stale frames encountered during the scan are
// dropped.
func (q *ResponseQueue) PeekUnconsumed(id ConsumerID) ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.frames[:0]
	var found []byte
	for _, pf := range q.frames {
		if found == nil {
			if _, seen := pf.seenBy[id]; !seen {
				pf.seenBy[id] = struct{}{}
				pf.usage++
				if pf.usage > usagePurgeThreshold {
					logging.Debug("purging stale frame", zap.Int("usage", pf.usage))
					continue
				}
				found = pf.frame
			}
		}
		kept = append(kept, pf)
	}
	q.frames = kept
	return found, found != nil
}

// Remove deletes the first parked frame byte-equal to the given one.
// It reports whether a frame was deleted; removing a frame that was
// never parked is a no-op.
func (q *ResponseQueue) Remove(frame []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, pf := range q.frames {
		if bytes.Equal(pf.frame, frame) {
			q.frames = append(q.frames[:i], q.frames[i+1:]...)
			return true
		}
	}
	return false
}

// IsEmptyFor reports whether no parked frame remains unseen by the
// given consumer.
func (q *ResponseQueue) IsEmptyFor(id ConsumerID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, pf := range q.frames {
		if _, seen := pf.seenBy[id]; !seen {
			return false
		}
	}
	return true
}

// ResetConsumption forgets everything the given consumer has seen, so
// all parked frames become deliverable to it again. Frames past the
// usage bound are purged on the way.
func (q *ResponseQueue) ResetConsumption(id ConsumerID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.frames[:0]
	for _, pf := range q.frames {
		if pf.usage > usagePurgeThreshold {
			logging.Debug("purging stale frame", zap.Int("usage", pf.usage))
			continue
		}
		delete(pf.seenBy, id)
		kept = append(kept, pf)
	}
	q.frames = kept
}

// PurgeAll drops every parked frame.
func (q *ResponseQueue) PurgeAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) > 0 {
		logging.Debug("purging response queue", zap.Int("dropped", len(q.frames)))
	}
	q.frames = nil
}

// Len returns the number of parked frames.
func (q *ResponseQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

package timer

import (
	"container/heap"
	"log/slog"
)

// Handle identifies a scheduled callback. Handles are never reused.
type Handle uint64

// Invalid is the zero handle: "no timer" (infinite duration, explicit removal).
const Invalid Handle = 0

// Func is a timer callback. tick is the scheduled fire time in milliseconds,
// ownerID and data are the values passed at scheduling time.
type Func func(h Handle, tick int64, ownerID uint32, data int)

type item struct {
	handle  Handle
	at      int64
	seq     uint64
	fn      Func
	ownerID uint32
	data    int
	index   int
}

// queue is a min-heap ordered by (at, seq).
type queue []*item

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	it := x.(*item)
	it.index = len(*q)
	*q = append(*q, it)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// Scheduler is a single-threaded timer queue with a virtual millisecond clock.
// Callbacks fire in (time, insertion) order; Cancel is synchronous, a cancelled
// callback never runs. Not safe for concurrent use: drive it from one goroutine
// (see Loop).
type Scheduler struct {
	now      int64
	next     uint64
	seq      uint64
	q        queue
	byHandle map[Handle]*item
}

// NewScheduler creates a scheduler whose clock starts at start (ms).
func NewScheduler(start int64) *Scheduler {
	return &Scheduler{
		now:      start,
		byHandle: make(map[Handle]*item, 256),
	}
}

// Now returns the current tick (ms). Inside a callback it equals the
// callback's scheduled time.
func (s *Scheduler) Now() int64 {
	return s.now
}

// ScheduleAt arms fn to fire at the absolute tick at.
func (s *Scheduler) ScheduleAt(at int64, fn Func, ownerID uint32, data int) Handle {
	if fn == nil {
		slog.Error("timer: nil callback", "ownerID", ownerID, "data", data)
		return Invalid
	}
	s.next++
	s.seq++
	it := &item{
		handle:  Handle(s.next),
		at:      at,
		seq:     s.seq,
		fn:      fn,
		ownerID: ownerID,
		data:    data,
	}
	heap.Push(&s.q, it)
	s.byHandle[it.handle] = it
	return it.handle
}

// Schedule arms fn to fire delay milliseconds from now.
func (s *Scheduler) Schedule(delay int64, fn Func, ownerID uint32, data int) Handle {
	return s.ScheduleAt(s.now+delay, fn, ownerID, data)
}

// Cancel removes a pending callback. Returns false for unknown, fired or
// already cancelled handles.
func (s *Scheduler) Cancel(h Handle) bool {
	it, ok := s.byHandle[h]
	if !ok {
		return false
	}
	delete(s.byHandle, h)
	if it.index >= 0 {
		heap.Remove(&s.q, it.index)
	}
	return true
}

// Remaining returns the time left until h fires.
func (s *Scheduler) Remaining(h Handle) (int64, bool) {
	it, ok := s.byHandle[h]
	if !ok {
		return 0, false
	}
	return it.at - s.now, true
}

// Pending returns the number of armed callbacks.
func (s *Scheduler) Pending() int {
	return len(s.q)
}

// Advance moves the clock to now and runs every callback due at or before it,
// including callbacks armed by earlier callbacks of the same batch.
// Returns the number of callbacks run. The clock never moves backwards.
func (s *Scheduler) Advance(now int64) int {
	fired := 0
	for len(s.q) > 0 {
		it := s.q[0]
		if it.at > now {
			break
		}
		heap.Pop(&s.q)
		delete(s.byHandle, it.handle)
		if it.at > s.now {
			s.now = it.at
		}
		it.fn(it.handle, s.now, it.ownerID, it.data)
		fired++
	}
	if now > s.now {
		s.now = now
	}
	return fired
}

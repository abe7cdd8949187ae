// Package sched runs periodic and one-shot game tasks on a virtual clock.
//
// Games own one Scheduler each and advance it from Step with the tick
// duration, so timers pause with the game and replay deterministically.
// StopAll is the single "cancel everything" operation used on every
// terminal transition.
package sched

import "time"

// minInterval keeps a periodic task from firing endlessly within one Advance.
const minInterval = time.Millisecond

// TaskID identifies a scheduled task. Zero is never a valid ID.
type TaskID uint64

type task struct {
	id       TaskID
	due      time.Duration
	interval time.Duration // 0 for one-shot tasks
	fn       func()
}

// Scheduler owns a set of cancelable tasks keyed by TaskID.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  map[TaskID]*task
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{tasks: make(map[TaskID]*task)}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run every interval, first after one interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) TaskID {
	interval = max(interval, minInterval)
	return s.add(interval, interval, fn)
}

// After schedules fn to run once after delay.
func (s *Scheduler) After(delay time.Duration, fn func()) TaskID {
	return s.add(max(delay, 0), 0, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) TaskID {
	s.nextID++
	id := s.nextID
	s.tasks[id] = &task{id: id, due: s.now + delay, interval: interval, fn: fn}
	return id
}

// Cancel removes a task. Cancelling an unknown or finished task is a no-op.
func (s *Scheduler) Cancel(id TaskID) {
	delete(s.tasks, id)
}

// Reschedule restarts a periodic task with a new interval counted from now.
// Returns false if the task is gone or is a one-shot task.
func (s *Scheduler) Reschedule(id TaskID, interval time.Duration) bool {
	t, ok := s.tasks[id]
	if !ok || t.interval == 0 {
		return false
	}
	t.interval = max(interval, minInterval)
	t.due = s.now + t.interval
	return true
}

// Active reports whether the task is still scheduled.
func (s *Scheduler) Active(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// StopAll cancels every task. The clock keeps its value.
func (s *Scheduler) StopAll() {
	clear(s.tasks)
}

// Advance moves the clock forward by dt, running due tasks in order.
// Tasks with equal due times run in creation order. Callbacks may add,
// cancel or stop tasks; a cancelled task never runs afterwards.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + max(dt, 0)
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(s.tasks, t.id)
		}
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) nextDue(target time.Duration) *task {
	var next *task
	for _, t := range s.tasks {
		if t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.id < next.id) {
			next = t
		}
	}
	return next
}

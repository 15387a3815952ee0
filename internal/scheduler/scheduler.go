// Package scheduler implements the per-FogDevice priority queue: admission,
// progress accounting and deadline decay, run once per simulation tick.
package scheduler

import (
	"container/heap"
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// ResourceHost is the narrow, non-owning handle a Scheduler uses to reach
// its owning device's resource pool, avoiding a Scheduler<->FogDevice cycle.
type ResourceHost interface {
	Allocate(mi int) bool
	Release(mi int)
	TotalMIPS() int
	AvailableMIPS() int
	MaxQueue() int
}

// taskHeap orders Created/Queued tasks by task.Less via container/heap.
type taskHeap []*task.Task

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return task.Less(h[i], h[j]) }
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(*task.Task)) }
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler holds one FogDevice's queue, executing bag and completed list.
type Scheduler struct {
	host ResourceHost

	queue      taskHeap
	executing  map[string]*task.Task
	completed  []*task.Task

	FailedTasks    int
	TotalResponse  float64
	ExecutedCount  int
}

// New returns a scheduler bound to host's narrow resource interface.
func New(host ResourceHost) *Scheduler {
	return &Scheduler{
		host:      host,
		queue:     taskHeap{},
		executing: make(map[string]*task.Task),
	}
}

// QueueLen reports the number of admitted tasks currently waiting for dispatch.
func (s *Scheduler) QueueLen() int { return len(s.queue) }

// ExecutingCount reports the number of tasks currently holding MIPS.
func (s *Scheduler) ExecutingCount() int { return len(s.executing) }

// Completed returns the list of tasks this scheduler has finished, in
// completion order (tasks finishing in the same tick are ordered by id).
// Callers must not mutate the returned slice.
func (s *Scheduler) Completed() []*task.Task { return s.completed }

// Admit accepts t into the queue iff queue_size < max_queue. On success the
// task transitions Created -> Queued.
func (s *Scheduler) Admit(t *task.Task) bool {
	if len(s.queue) >= s.host.MaxQueue() {
		return false
	}
	t.State = task.Queued
	heap.Push(&s.queue, t)
	return true
}

// Tick advances the scheduler by one simulation step: Progress, then
// Dispatch, then Deadline decay, in that fixed order.
func (s *Scheduler) Tick() {
	s.progress()
	s.dispatch()
	s.decayDeadlines()
}

func (s *Scheduler) progress() {
	n := len(s.executing)
	if n == 0 {
		return
	}
	perTask := s.host.AvailableMIPS() / maxInt(1, n)
	// available_mips tracks unallocated capacity, not the slice each
	// executing task already holds; progress only governs work advance.
	step := maxInt(constant.MinProgress, perTask)

	var finished []*task.Task
	for _, t := range s.executing {
		t.Remaining -= step
		if t.Remaining <= 0 {
			finished = append(finished, t)
		}
	}
	sort.Slice(finished, func(i, j int) bool { return finished[i].ID < finished[j].ID })
	for _, t := range finished {
		delete(s.executing, t.ID)
		s.host.Release(t.Size)
		t.State = task.Completed
		s.TotalResponse += t.ResponseMs
		s.ExecutedCount++
		s.completed = append(s.completed, t)
	}
}

func (s *Scheduler) dispatch() {
	for len(s.queue) > 0 {
		head := s.queue[0]
		if !s.host.Allocate(head.Size) {
			break
		}
		heap.Pop(&s.queue)
		head.State = task.Executing
		s.executing[head.ID] = head
	}
}

func (s *Scheduler) decayDeadlines() {
	kept := s.queue[:0]
	for _, t := range s.queue {
		t.Deadline--
		if t.Deadline <= 0 {
			t.State = task.Failed
			s.FailedTasks++
			continue
		}
		kept = append(kept, t)
	}
	s.queue = kept
	heap.Init(&s.queue)
}

// ForceCompleteAll marks every still-queued or executing task Completed so
// end-of-run metrics capture in-flight work. A known simplification: these
// are not real completions and should be reported under a distinct counter
// by the caller.
func (s *Scheduler) ForceCompleteAll() (forced []*task.Task) {
	for len(s.queue) > 0 {
		t := heap.Pop(&s.queue).(*task.Task)
		t.State = task.Completed
		s.completed = append(s.completed, t)
		forced = append(forced, t)
	}
	ids := make([]string, 0, len(s.executing))
	for id := range s.executing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		t := s.executing[id]
		delete(s.executing, id)
		s.host.Release(t.Size)
		t.State = task.Completed
		s.completed = append(s.completed, t)
		forced = append(forced, t)
	}
	return forced
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package scheduler

import (
	"testing"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// fakeHost is a minimal ResourceHost for testing the scheduler in
// isolation from FogDevice.
type fakeHost struct {
	total, available, maxQueue int
}

func newFakeHost(total, maxQueue int) *fakeHost {
	return &fakeHost{total: total, available: total, maxQueue: maxQueue}
}

func (h *fakeHost) Allocate(mi int) bool {
	if mi > h.available {
		return false
	}
	h.available -= mi
	return true
}
func (h *fakeHost) Release(mi int) {
	h.available += mi
	if h.available > h.total {
		h.available = h.total
	}
}
func (h *fakeHost) TotalMIPS() int     { return h.total }
func (h *fakeHost) AvailableMIPS() int { return h.available }
func (h *fakeHost) MaxQueue() int      { return h.maxQueue }

func TestAdmitRejectsWhenQueueFull(t *testing.T) {
	host := newFakeHost(1000, 1)
	s := New(host)
	t1 := task.New("t1", "iot_0", 100, 10, false, 0)
	t2 := task.New("t2", "iot_0", 100, 10, false, 0)

	if !s.Admit(t1) {
		t.Fatal("first admit should succeed")
	}
	if s.Admit(t2) {
		t.Fatal("second admit should be rejected: queue is full")
	}
}

func TestDispatchNeverExceedsAvailableMIPS(t *testing.T) {
	host := newFakeHost(1000, 10)
	s := New(host)
	for i := 0; i < 5; i++ {
		s.Admit(task.New(string(rune('a'+i)), "iot_0", 400, 20, false, 0))
	}
	s.Tick()
	if host.available < 0 {
		t.Fatalf("available_mips went negative: %d", host.available)
	}
	if host.available > host.total {
		t.Fatalf("available_mips exceeds total: %d > %d", host.available, host.total)
	}
}

func TestUrgentDispatchedBeforeNonUrgent(t *testing.T) {
	host := newFakeHost(1000, 20)
	s := New(host)
	for i := 0; i < 10; i++ {
		s.Admit(task.New("non"+string(rune('a'+i)), "iot_0", 100, 20, false, 0))
	}
	urgent := task.New("urgent1", "iot_0", 100, 20, true, 0)
	s.Admit(urgent)

	s.Tick()
	if urgent.State != task.Executing {
		t.Fatalf("urgent task state = %v, want Executing", urgent.State)
	}
}

func TestDeadlineExpiryDropsQueuedTasksWithoutTouchingAvailableMIPS(t *testing.T) {
	host := newFakeHost(1000, 10)
	s := New(host)

	// Saturate the device with one long-running executing task so the
	// queued tasks behind it never get a turn: at MinProgress per tick a
	// 1000 MI blocker needs 10 ticks, well past the queued deadlines.
	blocker := task.New("blocker", "iot_0", 1000, 100, false, 0)
	s.Admit(blocker)
	s.Tick() // blocker dispatches, available_mips -> 0

	for i := 0; i < 5; i++ {
		s.Admit(task.New("q"+string(rune('a'+i)), "iot_0", 10, 3, false, 0))
	}

	availBefore := host.available
	for i := 0; i < 3; i++ {
		s.Tick()
	}

	if s.QueueLen() != 0 {
		t.Fatalf("queue should be empty after deadline expiry, has %d", s.QueueLen())
	}
	if s.FailedTasks != 5 {
		t.Fatalf("failed_tasks = %d, want 5", s.FailedTasks)
	}
	if host.available != availBefore {
		t.Fatalf("available_mips changed from %d to %d: deadline expiry must not touch resources", availBefore, host.available)
	}
}

func TestAllocationReleasedExactlyOnceOnCompletion(t *testing.T) {
	host := newFakeHost(1000, 10)
	s := New(host)
	tk := task.New("t1", "iot_0", 150, 50, false, 0)
	s.Admit(tk)

	for tk.State != task.Completed && host.available <= host.total {
		before := host.available
		s.Tick()
		if tk.State == task.Executing && host.available == before {
			// still executing, mips remain allocated
			continue
		}
		if tk.State == task.Completed {
			break
		}
	}

	if host.available != host.total {
		t.Fatalf("available_mips = %d after completion, want %d (fully released)", host.available, host.total)
	}
}

func TestForceCompleteAllCompletesQueuedAndExecuting(t *testing.T) {
	host := newFakeHost(100, 10)
	s := New(host)
	blocker := task.New("blocker", "iot_0", 100, 100, false, 0)
	s.Admit(blocker)
	s.Tick()

	queued := task.New("q1", "iot_0", 10, 50, false, 0)
	s.Admit(queued)

	forced := s.ForceCompleteAll()
	if len(forced) != 2 {
		t.Fatalf("forced = %d tasks, want 2", len(forced))
	}
	for _, tk := range forced {
		if tk.State != task.Completed {
			t.Fatalf("task %s state = %v, want Completed", tk.ID, tk.State)
		}
	}
}

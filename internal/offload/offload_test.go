package offload

import (
	"testing"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/energy"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/network"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/security"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

func newDevice(t *testing.T, id string, x, y float64, mips, maxQueue int) *device.FogDevice {
	t.Helper()
	sec, err := security.New("k", "c")
	if err != nil {
		t.Fatalf("security.New: %v", err)
	}
	return device.New(id, x, y, mips, 512, 10000, 100, maxQueue, sec, network.NewStub(), energy.NewLedger())
}

func TestStaticShouldOffloadAboveUtilizationThreshold(t *testing.T) {
	s := NewStatic()
	d := newDevice(t, "fog_0", 0, 0, 1000, 10)
	d.Allocate(900) // utilization 0.9 > 0.8
	tk := task.New("t1", "iot_0", 50, 10, false, 0)
	if !s.ShouldOffload(d, tk) {
		t.Fatal("static policy should offload once utilization exceeds 0.8")
	}
}

func TestStaticRingIsAssignedByDescendingCapacity(t *testing.T) {
	s := NewStatic()
	a := newDevice(t, "a", 0, 0, 3000, 10)
	b := newDevice(t, "b", 1, 0, 2000, 10)
	c := newDevice(t, "c", 2, 0, 1000, 10)
	a.CellID, b.CellID, c.CellID = 0, 0, 0

	s.UpdatePolicy([]*device.FogDevice{a, b, c})

	if s.ring["a"] != "b" || s.ring["b"] != "c" || s.ring["c"] != "a" {
		t.Fatalf("ring = %+v, want a->b->c->a by descending capacity", s.ring)
	}
}

func TestDynamicSelectTargetExcludesSourceAndOverloaded(t *testing.T) {
	d := NewDynamic(1)
	src := newDevice(t, "src", 0, 0, 1000, 10)
	overloaded := newDevice(t, "over", 1, 0, 1000, 10)
	overloaded.Allocate(900)
	fine := newDevice(t, "fine", 2, 0, 1000, 10)

	tk := task.New("t1", "iot_0", 100, 10, false, 0)
	target, ok := d.SelectTarget(src, tk, []*device.FogDevice{src, overloaded, fine})
	if !ok {
		t.Fatal("expected a target to be selected")
	}
	if target.ID != "fine" {
		t.Fatalf("target = %s, want fine (src and overloaded must be excluded)", target.ID)
	}
}

func TestHybridMasterKeepsWorkLocalBelowThreshold(t *testing.T) {
	h := NewHybrid()
	master := newDevice(t, "master", 0, 0, 1000, 10)
	master.RoleV = device.Master
	tk := task.New("t1", "iot_0", 100, 10, false, 0)

	if h.ShouldOffload(master, tk) {
		t.Fatal("an idle master should keep non-urgent work local")
	}
}

func TestHybridMemberOffloadsNonUrgentAboveHalfLoad(t *testing.T) {
	h := NewHybrid()
	member := newDevice(t, "member", 0, 0, 1000, 10)
	member.RoleV = device.Member
	member.Allocate(600) // utilization 0.6 > 0.5
	tk := task.New("t1", "iot_0", 100, 10, false, 0)

	if !h.ShouldOffload(member, tk) {
		t.Fatal("a member above 0.5 utilization should offload a non-urgent task")
	}
}

func TestHybridMemberKeepsUrgentLocalWhenItFits(t *testing.T) {
	h := NewHybrid()
	member := newDevice(t, "member", 0, 0, 1000, 10)
	member.RoleV = device.Member
	member.Allocate(600)
	urgent := task.New("t1", "iot_0", 100, 10, true, 0)

	if h.ShouldOffload(member, urgent) {
		t.Fatal("an urgent task that fits should stay local regardless of utilization")
	}
}

func TestControllerDropsTaskRejectedEverywhere(t *testing.T) {
	sec, err := security.New("k", "c")
	if err != nil {
		t.Fatalf("security.New: %v", err)
	}
	src := device.New("src", 0, 0, 100, 512, 10000, 100, 0 /* max_queue=0 */, sec, network.NewStub(), energy.NewLedger())
	devices := map[string]*device.FogDevice{"src": src}

	dyn := NewDynamic(1)
	ctrl := New(devices, dyn)

	tk := task.New("t1", "src_iot", 50, 10, false, 0)
	ctrl.ProcessTask("src", tk)

	if ctrl.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1: a zero-capacity queue must reject admission", ctrl.Dropped)
	}
}

package device

import (
	"testing"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/energy"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/network"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/security"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

func newTestDevice(t *testing.T, id string, x, y float64, mips int) *FogDevice {
	t.Helper()
	sec, err := security.New("test-key", "test-cred")
	if err != nil {
		t.Fatalf("security.New: %v", err)
	}
	return New(id, x, y, mips, 1024, 10000, 100, 10, sec, network.NewStub(), energy.NewLedger())
}

func TestUtilizationDerivedFromAvailableMIPS(t *testing.T) {
	d := newTestDevice(t, "fog_0", 0, 0, 1000)
	if d.Utilization() != 0 {
		t.Fatalf("utilization = %v, want 0 for a fresh device", d.Utilization())
	}
	d.Allocate(500)
	if d.Utilization() != 0.5 {
		t.Fatalf("utilization = %v, want 0.5", d.Utilization())
	}
}

func TestAllocateRejectsOverCapacity(t *testing.T) {
	d := newTestDevice(t, "fog_0", 0, 0, 1000)
	if d.Allocate(1001) {
		t.Fatal("allocate should reject a request exceeding total_mips")
	}
	if d.AvailableMIPS() != 1000 {
		t.Fatalf("available_mips = %d after rejected allocate, want unchanged 1000", d.AvailableMIPS())
	}
}

func TestReleaseNeverExceedsTotal(t *testing.T) {
	d := newTestDevice(t, "fog_0", 0, 0, 1000)
	d.Release(50) // release without a matching allocate should still clamp
	if d.AvailableMIPS() != 1000 {
		t.Fatalf("available_mips = %d, want clamped to total 1000", d.AvailableMIPS())
	}
}

func TestReceiveTaskSetsOriginFogOnlyOnce(t *testing.T) {
	d1 := newTestDevice(t, "fog_0", 0, 0, 1000)
	tk := task.New("t1", "iot_0", 100, 10, false, 0)

	d1.ReceiveTask(tk)
	if tk.OriginFog != "fog_0" {
		t.Fatalf("origin_fog = %q, want fog_0", tk.OriginFog)
	}

	d2 := newTestDevice(t, "fog_1", 10, 0, 1000)
	d2.ReceiveTask(tk)
	if tk.OriginFog != "fog_0" {
		t.Fatalf("origin_fog = %q after a second receive, want it to stay fog_0", tk.OriginFog)
	}
}

func TestDistanceToIsSymmetric(t *testing.T) {
	a := newTestDevice(t, "fog_a", 0, 0, 1000)
	b := newTestDevice(t, "fog_b", 3, 4, 1000)
	if a.DistanceTo(b) != 5 {
		t.Fatalf("distance = %v, want 5", a.DistanceTo(b))
	}
	if a.DistanceTo(b) != b.DistanceTo(a) {
		t.Fatal("distance should be symmetric")
	}
}

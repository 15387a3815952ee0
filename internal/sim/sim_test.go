package sim

import (
	"testing"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/offload"
)

func TestBuildTopologyRejectsTooManyCells(t *testing.T) {
	if _, err := BuildTopology(5, 10, 3, 0); err == nil {
		t.Fatal("expected an error: 3 cells needs at least 9 fog devices")
	}
}

func TestBuildTopologyBindsEveryIoTToItsNearestFog(t *testing.T) {
	topo, err := BuildTopology(19, 50, 4, 0)
	if err != nil {
		t.Fatalf("BuildTopology: %v", err)
	}
	for _, iotDev := range topo.IoTs {
		bound, ok := topo.Devices[iotDev.FogID]
		if !ok {
			t.Fatalf("iot %s bound to unknown fog %s", iotDev.ID, iotDev.FogID)
		}
		boundDist := sqDistance(iotDev.X, iotDev.Y, bound.X, bound.Y)
		for _, other := range topo.Devices {
			if sqDistance(iotDev.X, iotDev.Y, other.X, other.Y) < boundDist {
				t.Fatalf("iot %s is closer to %s than to its bound fog %s", iotDev.ID, other.ID, iotDev.FogID)
			}
		}
	}
}

// TestRunConservesGeneratedTasks checks property (3): completed + failed +
// dropped + still_in_flight_at_end == generated.
func TestRunConservesGeneratedTasks(t *testing.T) {
	topo, err := BuildTopology(19, 50, 4, 0)
	if err != nil {
		t.Fatalf("BuildTopology: %v", err)
	}
	runner := NewRunner(topo, "hybrid", offload.NewHybrid(), 0)
	runner.Run(100)
	rec := runner.Report("test")

	sum := rec.Completed + rec.Failed + rec.Dropped + rec.StillInFlightAtEnd
	if sum != rec.Generated {
		t.Fatalf("completed(%d)+failed(%d)+dropped(%d)+in_flight(%d) = %d, want generated = %d",
			rec.Completed, rec.Failed, rec.Dropped, rec.StillInFlightAtEnd, sum, rec.Generated)
	}
}

// TestRunIsDeterministic checks property (7): identical seeds and
// parameters produce byte-for-byte identical metric records.
func TestRunIsDeterministic(t *testing.T) {
	run := func() interface{} {
		topo, err := BuildTopology(19, 50, 4, 0)
		if err != nil {
			t.Fatalf("BuildTopology: %v", err)
		}
		runner := NewRunner(topo, "hybrid", offload.NewHybrid(), 0)
		runner.Run(100)
		return runner.Report("test")
	}

	r1 := run()
	r2 := run()
	if r1 != r2 {
		t.Fatalf("two identically-seeded runs diverged:\n%+v\n%+v", r1, r2)
	}
}

package cluster

import (
	"testing"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/energy"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/network"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/security"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
)

func newDevices(t *testing.T, n int) []*device.FogDevice {
	t.Helper()
	sec, err := security.New("k", "c")
	if err != nil {
		t.Fatalf("security.New: %v", err)
	}
	net := network.NewStub()
	out := make([]*device.FogDevice, 0, n)
	for i := 0; i < n; i++ {
		x := float64((i % 5) * 100)
		y := float64((i / 5) * 100)
		out = append(out, device.New(
			deviceID(i), x, y, 1000, 512, 10000, 100, 10, sec, net, energy.NewLedger(),
		))
	}
	return out
}

func deviceID(i int) string {
	return "fog_" + string(rune('0'+i))
}

func TestClusterAssignsEveryDeviceACellInRange(t *testing.T) {
	devices := newDevices(t, 9)
	cells := Cluster(devices, 3, 42)
	if len(cells) == 0 {
		t.Fatal("expected at least one non-empty cell")
	}
	for _, d := range devices {
		if d.CellID < 0 || d.CellID >= 3 {
			t.Fatalf("device %s cell_id = %d, out of range [0,3)", d.ID, d.CellID)
		}
	}
}

func TestClusterElectsExactlyOneMasterPerNonEmptyCell(t *testing.T) {
	devices := newDevices(t, 9)
	cells := Cluster(devices, 3, 42)

	for _, c := range cells {
		masters := 0
		for _, id := range c.MemberIDs {
			for _, d := range devices {
				if d.ID == id && d.RoleV == device.Master {
					masters++
				}
			}
		}
		if masters != 1 {
			t.Fatalf("cell %d has %d masters, want exactly 1", c.ID, masters)
		}
	}
}

func TestClusterIsDeterministicAcrossRuns(t *testing.T) {
	d1 := newDevices(t, 9)
	d2 := newDevices(t, 9)

	Cluster(d1, 3, 42)
	Cluster(d2, 3, 42)

	for i := range d1 {
		if d1[i].CellID != d2[i].CellID {
			t.Fatalf("device %d cell_id differs across identically-seeded runs: %d vs %d", i, d1[i].CellID, d2[i].CellID)
		}
	}
}

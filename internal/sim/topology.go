// Package sim drives the discrete-step simulation loop: topology
// construction, traffic generation, per-tick device advancement and
// metric aggregation.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/energy"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/network"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/security"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/cluster"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/iot"
)

// Topology is the built device/IoT set plus the cells produced by
// clustering. A run mutates its devices' queues and resource state, so each
// policy run needs its own freshly built Topology; rebuilding with the same
// seeds reproduces identical pre-run conditions.
type Topology struct {
	Devices map[string]*device.FogDevice
	DeviceOrder []string // stable iteration order, by creation index
	IoTs    []*iot.IoTDevice
	Cells   []cluster.Cell
	Ledgers map[string]*energy.Ledger
}

// BuildTopology constructs numFog fog devices and numIoT IoT devices from
// the fixed per-subsystem seeds (topology=42, IoT placement=24), clusters the fog
// devices into k cells (clusterer seed 42), and binds each IoT device to
// its nearest fog device. seedOffset is added to every per-subsystem seed,
// so a nonzero offset reproducibly shifts topology, clustering and IoT
// placement to a different (but still deterministic) draw without touching
// the underlying constants.
func BuildTopology(numFog, numIoT, k int, seedOffset int64) (*Topology, error) {
	if numFog <= 0 || numIoT <= 0 || k <= 0 {
		return nil, fmt.Errorf("invalid topology: fog=%d iot=%d cells=%d must all be positive", numFog, numIoT, k)
	}
	if k*3 > numFog {
		return nil, fmt.Errorf("invalid configuration: cells (%d) too large for %d fog devices (need cells*3 <= fog)", k, numFog)
	}

	sec, err := security.New("sim-signing-key", "fog-cell-shared-credential")
	if err != nil {
		return nil, fmt.Errorf("security adapter init: %w", err)
	}
	net := network.NewStub()

	rngTopo := rand.New(rand.NewSource(constant.SeedTopology + seedOffset))
	devices := make(map[string]*device.FogDevice, numFog)
	order := make([]string, 0, numFog)
	ledgers := make(map[string]*energy.Ledger, numFog)
	for i := 0; i < numFog; i++ {
		id := fmt.Sprintf("fog_%d", i)
		mips := 1000 + rngTopo.Intn(1000)
		ram := float64(512 + rngTopo.Intn(1536))
		storage := float64(10000 + rngTopo.Intn(20000))
		bw := float64(100 + rngTopo.Intn(900))
		x := rngTopo.Float64() * 1000
		y := rngTopo.Float64() * 1000
		maxQueue := 5 + rngTopo.Intn(16)

		ledger := energy.NewLedger()
		d := device.New(id, x, y, mips, ram, storage, bw, maxQueue, sec, net, ledger)
		devices[id] = d
		order = append(order, id)
		ledgers[id] = ledger
	}

	deviceList := make([]*device.FogDevice, len(order))
	for i, id := range order {
		deviceList[i] = devices[id]
	}
	cells := cluster.Cluster(deviceList, k, constant.SeedClusterer+seedOffset)

	rngIoT := rand.New(rand.NewSource(constant.SeedIoT + seedOffset))
	iots := make([]*iot.IoTDevice, 0, numIoT)
	for i := 0; i < numIoT; i++ {
		x := rngIoT.Float64() * 1000
		y := rngIoT.Float64() * 1000
		nearest := nearestFog(x, y, deviceList)
		iots = append(iots, iot.New(fmt.Sprintf("iot_%d", i), x, y, nearest.ID))
	}

	return &Topology{
		Devices:     devices,
		DeviceOrder: order,
		IoTs:        iots,
		Cells:       cells,
		Ledgers:     ledgers,
	}, nil
}

func nearestFog(x, y float64, devices []*device.FogDevice) *device.FogDevice {
	best := devices[0]
	bestDist := sqDistance(x, y, best.X, best.Y)
	for _, d := range devices[1:] {
		dist := sqDistance(x, y, d.X, d.Y)
		if dist < bestDist {
			bestDist, best = dist, d
		}
	}
	return best
}

// sqDistance is the squared Euclidean distance, sufficient for nearest-
// neighbor comparisons without the cost of a square root.
func sqDistance(x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	return dx*dx + dy*dy
}

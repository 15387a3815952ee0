package offload

import (
	"math/rand"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Dynamic implements the PoA policy: stateless, cell-agnostic, driven by
// its own seeded RNG stream so runs stay reproducible.
type Dynamic struct {
	rng *rand.Rand
}

func NewDynamic(seed int64) *Dynamic {
	return &Dynamic{rng: rand.New(rand.NewSource(seed))}
}

func (d *Dynamic) CellAgnostic() bool { return true }

// UpdatePolicy is a no-op: Dynamic carries no state about the topology.
func (d *Dynamic) UpdatePolicy(all []*device.FogDevice) {}

func (d *Dynamic) ShouldOffload(src *device.FogDevice, t *task.Task) bool {
	util := src.Utilization()
	if util > 0.8 {
		return true
	}
	if !src.HasResources(t.Size) {
		return true
	}
	if !t.Urgent && util > 0.3 && util <= 0.8 {
		return d.rng.Float64() < constant.DynamicOffloadChance
	}
	return false
}

func (d *Dynamic) SelectTarget(src *device.FogDevice, t *task.Task, candidates []*device.FogDevice) (*device.FogDevice, bool) {
	var eligible []*device.FogDevice
	for _, c := range candidates {
		if c.ID == src.ID {
			continue
		}
		if !c.HasResources(t.Size) {
			continue
		}
		if c.Utilization() >= 0.8 {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return nil, false
	}
	if t.Urgent {
		return nearest(src, eligible), true
	}
	best, _ := leastUtilized(eligible)
	return best, true
}

func nearest(src *device.FogDevice, candidates []*device.FogDevice) *device.FogDevice {
	best := candidates[0]
	bestDist := src.DistanceTo(best)
	for _, c := range candidates[1:] {
		dist := src.DistanceTo(c)
		if dist < bestDist || (dist == bestDist && c.ID < best.ID) {
			bestDist, best = dist, c
		}
	}
	return best
}

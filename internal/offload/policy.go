// Package offload implements the OffloadingPolicy contract (Static,
// Dynamic, Hybrid) and the Controller that drives per-task placement.
package offload

import (
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Policy is the three-operation contract every offloading strategy
// implements. A policy must be pure over its inputs and the current
// snapshot: it never mutates device state.
type Policy interface {
	ShouldOffload(src *device.FogDevice, t *task.Task) bool
	SelectTarget(src *device.FogDevice, t *task.Task, candidates []*device.FogDevice) (*device.FogDevice, bool)
	UpdatePolicy(all []*device.FogDevice)
	// CellAgnostic reports whether the controller should widen the
	// candidate set to every device instead of just the source's cell.
	CellAgnostic() bool
}

// StaticOffloadTable maps, per cell id, a source device id to its
// pre-registered offload partner's device id.
type StaticOffloadTable map[string]map[string]string

func leastUtilized(candidates []*device.FogDevice) (*device.FogDevice, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Utilization() < best.Utilization() ||
			(c.Utilization() == best.Utilization() && c.ID < best.ID) {
			best = c
		}
	}
	return best, true
}

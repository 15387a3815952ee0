package offload

import (
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Controller orchestrates per-task placement: it asks the active policy
// whether and where to offload, falls back to local admission, and counts
// tasks that could not be placed anywhere.
type Controller struct {
	devices map[string]*device.FogDevice
	policy  Policy
	tick    int
	Dropped int
	Offloaded int
	Generated int
}

// New binds a Controller to the full device set and an initial policy,
// priming the policy's table once before the run starts.
func New(devices map[string]*device.FogDevice, policy Policy) *Controller {
	c := &Controller{devices: devices, policy: policy}
	c.policy.UpdatePolicy(allDevices(devices))
	return c
}

// allDevices flattens the device map into a slice sorted by ID, so every
// caller (table priming, cell-agnostic candidate sets, periodic refresh)
// sees the same order regardless of the map's randomized iteration order.
func allDevices(m map[string]*device.FogDevice) []*device.FogDevice {
	out := make([]*device.FogDevice, 0, len(m))
	for _, d := range m {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProcessTask places t starting from its bound source device: ask the
// policy whether to offload, select a target among the right candidate
// set, attempt the transfer, and fall back to local admission on any
// rejection before counting the task as dropped.
func (c *Controller) ProcessTask(srcFogID string, t *task.Task) {
	c.Generated++
	src, ok := c.devices[srcFogID]
	if !ok {
		c.Dropped++
		return
	}

	if !c.policy.ShouldOffload(src, t) {
		if src.ReceiveTask(t) {
			return
		}
		c.Dropped++
		return
	}

	candidates := c.candidatesFor(src)
	target, found := c.policy.SelectTarget(src, t, candidates)
	if found && target.ID != src.ID {
		if src.Communicator.OffloadTask(target, t) {
			c.Offloaded++
			return
		}
	}

	if src.ReceiveTask(t) {
		return
	}
	c.Dropped++
}

func (c *Controller) candidatesFor(src *device.FogDevice) []*device.FogDevice {
	if c.policy.CellAgnostic() {
		return allDevices(c.devices)
	}
	out := make([]*device.FogDevice, 0, len(src.CellMembers)+1)
	for id := range src.CellMembers {
		if d, ok := c.devices[id]; ok {
			out = append(out, d)
		}
	}
	out = append(out, src)
	return out
}

// Tick advances the controller's own counter and, every
// constant.PolicyRefreshTicks ticks, asks the policy to refresh its table.
func (c *Controller) Tick() {
	c.tick++
	if c.tick%constant.PolicyRefreshTicks == 0 {
		c.UpdateStatus()
	}
}

// UpdateStatus refreshes the active policy's table from current
// utilization; exposed separately so the simulation loop's initial and
// periodic calls share one code path.
func (c *Controller) UpdateStatus() {
	c.policy.UpdatePolicy(allDevices(c.devices))
}

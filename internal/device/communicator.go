package device

import (
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Communicator accounts for messages sent by its owning device and carries
// out offload transfers, including the latency model.
type Communicator struct {
	owner        *FogDevice
	MessageCount int
}

func NewCommunicator(owner *FogDevice) *Communicator {
	return &Communicator{owner: owner}
}

// SendStatus delivers a snapshot to target's monitor. Counted as a message
// regardless of outcome, same as offload_task.
func (c *Communicator) SendStatus(target *FogDevice, status ResourceStatus) {
	c.MessageCount++
	target.Monitor.UpdateNeighbor(status)
}

// OffloadTask delivers t to target, charging the distance-based latency to
// t.response_time and the sending device's transmit energy before
// attempting admission. No retry: failure is final for this call, and
// neither charge already applied is rolled back, per the "only the path
// actually taken" accounting rule.
func (c *Communicator) OffloadTask(target *FogDevice, t *task.Task) bool {
	c.MessageCount++
	latency := constant.BaseLatencyMs + constant.DistanceFactorMs*c.owner.DistanceTo(target)
	t.AddResponseTime(latency)
	c.owner.chargeTransmit(latency)
	return target.ReceiveTask(t)
}

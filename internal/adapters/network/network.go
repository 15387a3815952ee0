// Package network is the stub transmission adapter consumed by
// FogDevice.ReceiveTask to charge energy on a transfer. Real network
// physics (bandwidth/latency/packet-loss tables) is out of scope.
package network

import "github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"

// Result is the outcome of one simulated transmission: whether it
// succeeded, how long it took, and how much energy it cost.
type Result struct {
	Success   bool
	LatencyMs float64
	EnergyJ   float64
	Reason    string
}

// Transmitter is the narrow contract FogDevice depends on.
type Transmitter interface {
	SimulateTransmission(bytes int, distanceM float64) Result
}

// Stub always succeeds; latency follows the same base+distance model as
// the Communicator, energy is proportional to payload size.
type Stub struct{}

func NewStub() Stub { return Stub{} }

func (Stub) SimulateTransmission(bytesLen int, distanceM float64) Result {
	return Result{
		Success:   true,
		LatencyMs: 10 + 0.1*distanceM,
		EnergyJ:   float64(bytesLen) * constant.NetworkEnergyPerByteJ,
	}
}

// Package device implements FogDevice resource accounting and its three
// owned submodules (Monitor, Scheduler, Communicator). The Scheduler reaches
// the device only through the narrow scheduler.ResourceHost interface;
// Monitor and Communicator hold a plain *FogDevice back-pointer to their owner.
package device

import (
	"math"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/energy"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/network"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/adapters/security"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/scheduler"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// LoadBucket discretizes utilization for policy decisions.
type LoadBucket int

const (
	VeryLow LoadBucket = iota
	Low
	Medium
	High
)

// ResourceStatus is a plain snapshot value, safe to cache and go stale.
type ResourceStatus struct {
	DeviceID    string
	Utilization float64
	AvailRAM    float64
	AvailStore  float64
	AvailBW     float64
	Bucket      LoadBucket
}

func bucketFor(util float64) LoadBucket {
	switch {
	case util < 0.3:
		return VeryLow
	case util < 0.5:
		return Low
	case util < 0.8:
		return Medium
	default:
		return High
	}
}

// Role is a device's position within its cell after clustering.
type Role int

const (
	Member Role = iota
	Master
)

// FogDevice owns its Scheduler, Monitor and Communicator, and is the sole
// mutator of its own available_mips.
type FogDevice struct {
	ID string
	X, Y float64

	TotalMIPSv int
	RAM, Storage, Bandwidth float64
	MaxQueuev  int

	availableMIPS int
	CellID        int
	RoleV         Role
	CellMembers   map[string]struct{}

	Received         int
	TotalResponseSum float64

	Scheduler    *scheduler.Scheduler
	Monitor      *Monitor
	Communicator *Communicator

	security security.Authenticator
	network  network.Transmitter
	energy   *energy.Ledger
}

// New constructs a device with available_mips == total_mips, wires its
// Scheduler against itself via the narrow ResourceHost contract and its
// Monitor and Communicator via a direct owner pointer, and binds
// the shared adapter instances passed in by the caller.
func New(id string, x, y float64, totalMIPS int, ram, storage, bandwidth float64, maxQueue int,
	sec security.Authenticator, net network.Transmitter, en *energy.Ledger) *FogDevice {
	d := &FogDevice{
		ID:            id,
		X:             x,
		Y:             y,
		TotalMIPSv:    totalMIPS,
		RAM:           ram,
		Storage:       storage,
		Bandwidth:     bandwidth,
		MaxQueuev:     maxQueue,
		availableMIPS: totalMIPS,
		CellID:        -1,
		CellMembers:   make(map[string]struct{}),
		security:      sec,
		network:       net,
		energy:        en,
	}
	d.Scheduler = scheduler.New(d)
	d.Monitor = NewMonitor(d)
	d.Communicator = NewCommunicator(d)
	return d
}

// ResourceHost implementation, consumed only by this device's own Scheduler.

func (d *FogDevice) Allocate(mi int) bool {
	if mi > d.availableMIPS {
		return false
	}
	d.availableMIPS -= mi
	return true
}

func (d *FogDevice) Release(mi int) {
	d.availableMIPS += mi
	if d.availableMIPS > d.TotalMIPSv {
		d.availableMIPS = d.TotalMIPSv
	}
}

func (d *FogDevice) TotalMIPS() int     { return d.TotalMIPSv }
func (d *FogDevice) AvailableMIPS() int { return d.availableMIPS }
func (d *FogDevice) MaxQueue() int      { return d.MaxQueuev }

// Utilization is derived from available vs total MIPS, never stored.
func (d *FogDevice) Utilization() float64 {
	if d.TotalMIPSv == 0 {
		return 0
	}
	return 1 - float64(d.availableMIPS)/float64(d.TotalMIPSv)
}

// HasResources reports whether the device could, right now, dispatch a task
// of the given size without a prior queue wait.
func (d *FogDevice) HasResources(size int) bool {
	return size <= d.availableMIPS
}

// DistanceTo is the plain Euclidean distance used by every policy and by
// the Communicator's latency model.
func (d *FogDevice) DistanceTo(o *FogDevice) float64 {
	dx, dy := d.X-o.X, d.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// chargeTransmit charges transmit-state energy for the given duration,
// called by this device's own Communicator on every offload send.
func (d *FogDevice) chargeTransmit(ms float64) {
	if d.energy != nil {
		d.energy.Consume(energy.Transmit, ms/1000)
	}
}

// ReceiveTask is the single admission entry point used both for local
// placement and for an incoming offload. It authenticates the transfer,
// charges energy via the network stub, and then defers to the Scheduler.
func (d *FogDevice) ReceiveTask(t *task.Task) bool {
	if t.OriginFog == "" {
		t.OriginFog = d.ID
	}
	ok, overheadMs := d.security.Authenticate(t.SourceIoT, d.ID)
	if !ok {
		return false
	}
	t.AddResponseTime(overheadMs)

	result := d.network.SimulateTransmission(t.Size, 0)
	if d.energy != nil {
		d.energy.ChargeReceive(result.EnergyJ)
	}
	if !result.Success {
		return false
	}

	admitted := d.Scheduler.Admit(t)
	if admitted {
		d.Received++
	}
	return admitted
}

// Tick advances this device's scheduler by one step and folds newly
// completed tasks' response times into the device's running total.
func (d *FogDevice) Tick() {
	before := len(d.Scheduler.Completed())
	d.Scheduler.Tick()
	after := d.Scheduler.Completed()
	for _, t := range after[before:] {
		d.TotalResponseSum += t.ResponseMs
	}
	if d.energy != nil {
		d.energy.ChargeProcessing(d.Scheduler.ExecutingCount())
		d.energy.ChargeIdle()
	}
}

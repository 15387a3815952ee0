package sim

import (
	"math/rand"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/api"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/offload"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Runner drives one policy's run over a shared Topology: single-threaded,
// cooperative, discrete-step. No locks are needed because one tick fully
// completes (generation, per-device tick, periodic controller refresh)
// before the next begins.
type Runner struct {
	topo       *Topology
	controller *offload.Controller
	policyName string
	traffic    *rand.Rand
	util       *utilTracker
	publish    func(api.Status)
	totalTicks int

	tick int
}

// SetStatusPublisher wires an optional status-API sink. When set, Run
// publishes a fresh snapshot after every tick; the simulation loop is the
// snapshot's sole writer, so handlers reading it never touch live state.
func (r *Runner) SetStatusPublisher(publish func(api.Status)) {
	r.publish = publish
}

// NewRunner binds policy to topo's device set and seeds the traffic
// generator from the fixed traffic seed plus seedOffset, independent of
// every other random stream in the run.
func NewRunner(topo *Topology, policyName string, policy offload.Policy, seedOffset int64) *Runner {
	return &Runner{
		topo:       topo,
		controller: offload.New(topo.Devices, policy),
		policyName: policyName,
		traffic:    rand.New(rand.NewSource(constant.SeedTraffic + seedOffset)),
	}
}

// Run executes ticks simulation steps and then force-completes every
// device's in-flight work. It returns nothing; Report builds the resulting
// Record afterwards, and host telemetry is added by the caller (kept out of
// this package so the core stays free of diagnostic-only dependencies).
func (r *Runner) Run(ticks int) {
	r.totalTicks = ticks
	for t := 0; t < ticks; t++ {
		r.generate(t)
		r.advance()
		r.sampleUtilization()
		r.controller.Tick()
		r.tick++
		if r.publish != nil {
			r.publish(r.snapshot())
		}
	}
	r.finish()
}

func (r *Runner) snapshot() api.Status {
	devices := make([]api.DeviceStatus, 0, len(r.topo.DeviceOrder))
	for _, id := range r.topo.DeviceOrder {
		d := r.topo.Devices[id]
		devices = append(devices, api.DeviceStatus{
			ID:          id,
			QueueLen:    d.Scheduler.QueueLen(),
			Executing:   d.Scheduler.ExecutingCount(),
			Utilization: d.Utilization(),
		})
	}
	return api.Status{
		Policy:  r.policyName,
		Tick:    r.tick,
		Ticks:   r.totalTicks,
		Devices: devices,
	}
}

func (r *Runner) generate(tick int) {
	for _, src := range r.topo.IoTs {
		if r.traffic.Float64() >= constant.TaskGenProbability {
			continue
		}
		size := constant.TaskSizeMin + r.traffic.Intn(constant.TaskSizeMax-constant.TaskSizeMin+1)
		deadline := constant.TaskDeadlineMin + r.traffic.Intn(constant.TaskDeadlineMax-constant.TaskDeadlineMin+1)
		urgent := r.traffic.Float64() < constant.TaskUrgentChance
		id := src.NextTaskID(tick)
		t := task.New(id, src.ID, size, deadline, urgent, tick)
		r.controller.ProcessTask(src.FogID, t)
	}
}

func (r *Runner) advance() {
	for _, id := range r.topo.DeviceOrder {
		r.topo.Devices[id].Tick()
	}
}

func (r *Runner) finish() {
	for _, id := range r.topo.DeviceOrder {
		r.topo.Devices[id].Scheduler.ForceCompleteAll()
	}
}

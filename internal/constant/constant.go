// Package constant holds the fixed numeric parameters of the offloading
// simulation, grouped by concern.
package constant

// Load thresholds (utilization ratios) of the load buckets. The Monitor's
// bucketing and the policies compare against the same values written as
// literals; these names are not referenced by them.
const (
	LoadVeryLowMax = 0.3
	LoadLowMax     = 0.5
	LoadMediumMax  = 0.8
)

// Scheduler timing.
const (
	// MinProgress is the minimum MI a single executing task advances per
	// tick, regardless of contention, guaranteeing forward progress.
	MinProgress = 100
)

// Communicator latency model: a fixed base cost plus a per-unit-distance
// factor, charged on every offload send.
const (
	BaseLatencyMs     = 10.0
	DistanceFactorMs  = 0.1 // ms per distance unit
)

// Dynamic policy probabilities.
const (
	DynamicOffloadChance = 0.7 // chance of offload for non-urgent, moderately loaded tasks
)

// Hybrid policy weighting: how much a target's load vs. its distance
// counts toward the best-score pick, split by task urgency.
const (
	HybridWeightLoadUrgent    = 0.3
	HybridWeightLoadNonUrgent = 0.7
	HybridDistanceNorm        = 1000.0
)

// Controller cadence.
const (
	// PolicyRefreshTicks is how often the controller recomputes the
	// active policy's offload table.
	PolicyRefreshTicks = 10
)

// Traffic generation: per-tick task arrival chance and the ranges tasks
// are drawn from.
const (
	TaskGenProbability = 0.2
	TaskSizeMin        = 300
	TaskSizeMax        = 2000
	TaskDeadlineMin    = 5
	TaskDeadlineMax    = 25
	TaskUrgentChance   = 0.2
)

// Fixed seeds, each owned by its subsystem rather than a global RNG.
const (
	SeedTopology  = 42
	SeedIoT       = 24
	SeedTraffic   = 33
	SeedClusterer = 42
)

// Security adapter.
const (
	// AuthOverheadMs is the fixed per-authentication overhead added to a
	// task's response time. Kept constant (not wall-clock measured) so
	// that identical seeds reproduce identical metrics.
	AuthOverheadMs = 2.0
)

// Energy model wattages, modeled after the original EnergyModel.java.
const (
	IdlePowerW     = 0.5
	ProcessingPowerW = 4.0
	TransmitPowerW = 1.2
	ReceivePowerW  = 0.9
)

// Network adapter stub.
const (
	NetworkEnergyPerByteJ = 1e-6
)

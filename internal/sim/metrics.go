package sim

import (
	"math"
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/report"
)

// utilTracker accumulates per-device utilization samples across ticks so
// the final report can describe both the mean load and how evenly it was
// spread, rather than a single end-of-run snapshot.
type utilTracker struct {
	sum     map[string]float64
	samples int
}

func newUtilTracker(deviceIDs []string) *utilTracker {
	t := &utilTracker{sum: make(map[string]float64, len(deviceIDs))}
	for _, id := range deviceIDs {
		t.sum[id] = 0
	}
	return t
}

// sampleUtilization runs after Runner.advance each tick.
func (r *Runner) sampleUtilization() {
	if r.util == nil {
		r.util = newUtilTracker(r.topo.DeviceOrder)
	}
	for _, id := range r.topo.DeviceOrder {
		r.util.sum[id] += r.topo.Devices[id].Utilization()
	}
	r.util.samples++
}

func (t *utilTracker) meanByDevice() []float64 {
	ids := make([]string, 0, len(t.sum))
	for id := range t.sum {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]float64, 0, len(ids))
	for _, id := range ids {
		s := t.sum[id]
		if t.samples == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, s/float64(t.samples))
	}
	return out
}

func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance)
}

func minMax(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}

// Report aggregates everything collected during Run into a report.Record.
// Must be called after Run; it does not itself advance the simulation.
func (r *Runner) Report(configLabel string) report.Record {
	var completedCount, failedCount, stillInFlight int
	var responseSum float64
	var responseCount int
	var messages int
	var energyJ float64

	for _, id := range r.topo.DeviceOrder {
		d := r.topo.Devices[id]
		failedCount += d.Scheduler.FailedTasks
		completedCount += d.Scheduler.ExecutedCount
		messages += d.Communicator.MessageCount
		if l, ok := r.topo.Ledgers[id]; ok {
			energyJ += l.Total()
		}
		for _, t := range d.Scheduler.Completed() {
			responseSum += t.ResponseMs
			responseCount++
		}
	}
	stillInFlight = responseCount - completedCount

	generated := r.controller.Generated
	dropped := r.controller.Dropped

	utilMeans := r.util.meanByDevice()
	overallUtil := 0.0
	for _, u := range utilMeans {
		overallUtil += u
	}
	if len(utilMeans) > 0 {
		overallUtil /= float64(len(utilMeans))
	}
	sd := stdDev(utilMeans)
	lo, hi := minMax(utilMeans)
	minmaxIdx := 0.0
	if hi > 0 {
		minmaxIdx = 1 - (hi-lo)/hi
	}

	avgResponse := 0.0
	if responseCount > 0 {
		avgResponse = responseSum / float64(responseCount)
	}
	completionRate := 0.0
	if generated > 0 {
		completionRate = float64(completedCount) / float64(generated)
	}
	offloadRate := 0.0
	if generated > 0 {
		offloadRate = float64(r.controller.Offloaded) / float64(generated)
	}

	return report.Record{
		Policy:             r.policyName,
		Config:             configLabel,
		CompletionRate:     completionRate,
		Utilization:        overallUtil,
		LoadBalanceStdDev:  1 - sd,
		LoadBalanceMinMax:  minmaxIdx,
		AvgResponseMs:      avgResponse,
		TotalEnergyJ:       energyJ,
		OffloadRate:        offloadRate,
		Messages:           messages,
		Dropped:            dropped,
		StillInFlightAtEnd: stillInFlight,
		Generated:          generated,
		Completed:          completedCount,
		Failed:             failedCount,
	}
}

// Package hosttelemetry takes a one-shot snapshot of the machine running
// the simulation, taken at run start and recorded on each report record
// (its CPU reading only) for diagnostic purposes. It is not printed. It
// must never be read back into simulation math: doing so would make a
// run's metrics depend on the host it happened to execute on, breaking
// the determinism property.
package hosttelemetry

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is a best-effort, host-local reading. Zero values indicate the
// underlying syscall failed; callers should treat it as advisory only.
type Snapshot struct {
	CPUPercent float64
	MemPercent float64
}

// Take samples CPU over a short window and current memory usage. Errors
// are swallowed into zero values since this is diagnostic, never fatal.
func Take() Snapshot {
	var snap Snapshot
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		snap.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemPercent = vm.UsedPercent
	}
	return snap
}

package offload

import (
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Hybrid implements HybOff: a master-biased policy that falls back to a
// distance/load weighted scoring when the static table can't place a task.
type Hybrid struct {
	ring map[string]string // device id -> partner device id, master-anchored
}

func NewHybrid() *Hybrid {
	return &Hybrid{ring: make(map[string]string)}
}

func (h *Hybrid) CellAgnostic() bool { return false }

// UpdatePolicy builds, per cell, the master-anchored ring: master -> most
// capable member -> next-by-capacity -> ... -> least capable -> master.
func (h *Hybrid) UpdatePolicy(all []*device.FogDevice) {
	byCell := make(map[int][]*device.FogDevice)
	for _, d := range all {
		byCell[d.CellID] = append(byCell[d.CellID], d)
	}
	ring := make(map[string]string)
	for _, members := range byCell {
		if len(members) < 2 {
			continue
		}
		var master *device.FogDevice
		var rest []*device.FogDevice
		for _, m := range members {
			if m.RoleV == device.Master {
				master = m
			} else {
				rest = append(rest, m)
			}
		}
		if master == nil || len(rest) == 0 {
			continue
		}
		sort.SliceStable(rest, func(i, j int) bool {
			if rest[i].TotalMIPS() != rest[j].TotalMIPS() {
				return rest[i].TotalMIPS() > rest[j].TotalMIPS()
			}
			return rest[i].ID < rest[j].ID
		})
		chain := append([]*device.FogDevice{master}, rest...)
		n := len(chain)
		for i, d := range chain {
			ring[d.ID] = chain[(i+1)%n].ID
		}
	}
	h.ring = ring
}

func (h *Hybrid) ShouldOffload(src *device.FogDevice, t *task.Task) bool {
	if !src.HasResources(t.Size) {
		return true
	}
	if src.RoleV == device.Master {
		return src.Utilization() >= 0.8
	}
	if t.Urgent {
		return false
	}
	return src.Utilization() > 0.5
}

func (h *Hybrid) SelectTarget(src *device.FogDevice, t *task.Task, candidates []*device.FogDevice) (*device.FogDevice, bool) {
	sameCell := make([]*device.FogDevice, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != src.ID && c.CellID == src.CellID {
			sameCell = append(sameCell, c)
		}
	}
	if len(sameCell) == 0 {
		return nil, false
	}

	if t.Urgent {
		return bestScore(src, t, sameCell, constant.HybridWeightLoadUrgent)
	}

	if partnerID, ok := h.ring[src.ID]; ok {
		for _, c := range sameCell {
			if c.ID == partnerID && c.HasResources(t.Size) {
				return c, true
			}
		}
	}
	return bestScore(src, t, sameCell, constant.HybridWeightLoadNonUrgent)
}

func bestScore(src *device.FogDevice, t *task.Task, candidates []*device.FogDevice, wLoad float64) (*device.FogDevice, bool) {
	var eligible []*device.FogDevice
	for _, c := range candidates {
		if c.HasResources(t.Size) {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}
	best := eligible[0]
	bestScore := score(src, best, wLoad)
	for _, c := range eligible[1:] {
		s := score(src, c, wLoad)
		if s < bestScore || (s == bestScore && c.ID < best.ID) {
			bestScore, best = s, c
		}
	}
	return best, true
}

func score(src, candidate *device.FogDevice, wLoad float64) float64 {
	dist := src.DistanceTo(candidate) / constant.HybridDistanceNorm
	return wLoad*candidate.Utilization() + (1-wLoad)*dist
}

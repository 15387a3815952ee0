package offload

import (
	"sort"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/device"
	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/task"
)

// Static implements the SoA policy: a fixed circular ring per cell,
// members ordered by descending total_mips.
type Static struct {
	ring map[string]string // device id -> partner device id
}

func NewStatic() *Static {
	return &Static{ring: make(map[string]string)}
}

func (s *Static) CellAgnostic() bool { return false }

func (s *Static) UpdatePolicy(all []*device.FogDevice) {
	byCell := make(map[int][]*device.FogDevice)
	for _, d := range all {
		byCell[d.CellID] = append(byCell[d.CellID], d)
	}
	ring := make(map[string]string)
	for _, members := range byCell {
		if len(members) < 2 {
			continue
		}
		sorted := append([]*device.FogDevice{}, members...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].TotalMIPS() != sorted[j].TotalMIPS() {
				return sorted[i].TotalMIPS() > sorted[j].TotalMIPS()
			}
			return sorted[i].ID < sorted[j].ID
		})
		n := len(sorted)
		for i, d := range sorted {
			ring[d.ID] = sorted[(i+1)%n].ID
		}
	}
	s.ring = ring
}

func (s *Static) ShouldOffload(src *device.FogDevice, t *task.Task) bool {
	return src.Utilization() > 0.8
}

func (s *Static) SelectTarget(src *device.FogDevice, t *task.Task, candidates []*device.FogDevice) (*device.FogDevice, bool) {
	if partnerID, ok := s.ring[src.ID]; ok {
		for _, c := range candidates {
			if c.ID == partnerID && c.HasResources(t.Size) {
				return c, true
			}
		}
	}
	return leastUtilized(candidates)
}

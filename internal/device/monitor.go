package device

// Monitor snapshots local utilization and caches neighbor snapshots, used
// by the Hybrid policy and by a cell's master for a cell-wide view.
type Monitor struct {
	owner     *FogDevice
	neighbors map[string]ResourceStatus
}

// NewMonitor binds a Monitor to its owner through a plain pointer; a
// Monitor never outlives its FogDevice so no narrower handle is needed here.
func NewMonitor(owner *FogDevice) *Monitor {
	return &Monitor{owner: owner, neighbors: make(map[string]ResourceStatus)}
}

// Snapshot returns the owning device's current ResourceStatus. Callers may
// hold on to the returned value; it will not be mutated in place.
func (m *Monitor) Snapshot() ResourceStatus {
	util := m.owner.Utilization()
	return ResourceStatus{
		DeviceID:    m.owner.ID,
		Utilization: util,
		AvailRAM:    m.owner.RAM,
		AvailStore:  m.owner.Storage,
		AvailBW:     m.owner.Bandwidth,
		Bucket:      bucketFor(util),
	}
}

// UpdateNeighbor stores a peer's last-known status. Stale entries are
// tolerated by design: the simulator never blocks waiting for a refresh.
func (m *Monitor) UpdateNeighbor(status ResourceStatus) {
	m.neighbors[status.DeviceID] = status
}

// Neighbor returns the last cached status for id, if any.
func (m *Monitor) Neighbor(id string) (ResourceStatus, bool) {
	s, ok := m.neighbors[id]
	return s, ok
}

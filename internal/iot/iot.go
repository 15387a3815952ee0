// Package iot models the task sources bound to a single nearest fog device.
package iot

import "strconv"

// IoTDevice is a task source fixed at a position and bound to the fog
// device nearest to it at build time.
type IoTDevice struct {
	ID    string
	X, Y  float64
	FogID string
	seq   int
}

func New(id string, x, y float64, fogID string) *IoTDevice {
	return &IoTDevice{ID: id, X: x, Y: y, FogID: fogID}
}

// NextTaskID derives a deterministic id from this device's identity and an
// internal per-device sequence counter, never from wall-clock time, so
// identical seeds reproduce identical task ids (determinism property).
func (d *IoTDevice) NextTaskID(tick int) string {
	d.seq++
	return d.ID + "-" + strconv.Itoa(tick) + "-" + strconv.Itoa(d.seq)
}

// Package energy implements a per-device energy ledger, modeled after the
// original EnergyModel: idle/processing/transmit/receive states each draw
// a fixed wattage, accumulated into Joules. No battery depletion is
// modeled for fog devices; this is pure bookkeeping consumed by reports.
package energy

import "github.com/durga79/Iot-Edge-CLoud-Offloading/internal/constant"

// State is one of the four power-draw states a device can charge against.
type State int

const (
	Idle State = iota
	Processing
	Transmit
	Receive
)

// Ledger accumulates Joules per state for a single device across a run.
type Ledger struct {
	IdleJ, ProcessingJ, TransmitJ, ReceiveJ float64
}

func NewLedger() *Ledger { return &Ledger{} }

// Consume charges seconds of the given state at its fixed wattage.
// Returns true always; the bool return exists to match the energy adapter's
// battery-depletion contract even though batteries are disabled here.
func (l *Ledger) Consume(state State, seconds float64) bool {
	switch state {
	case Idle:
		l.IdleJ += constant.IdlePowerW * seconds
	case Processing:
		l.ProcessingJ += constant.ProcessingPowerW * seconds
	case Transmit:
		l.TransmitJ += constant.TransmitPowerW * seconds
	case Receive:
		l.ReceiveJ += constant.ReceivePowerW * seconds
	}
	return true
}

// ChargeIdle is called once per tick regardless of load: the device still
// draws idle power even while executing tasks.
func (l *Ledger) ChargeIdle() { l.Consume(Idle, 1) }

// ChargeProcessing charges one tick of processing power, scaled by whether
// any task is executing (binary, not per-core, matching the reference
// model's granularity).
func (l *Ledger) ChargeProcessing(executingCount int) {
	if executingCount > 0 {
		l.Consume(Processing, 1)
	}
}

// ChargeReceive is invoked by FogDevice.ReceiveTask with the Joule amount
// already computed by the network stub, rather than seconds, since the
// stub derives energy from payload size directly.
func (l *Ledger) ChargeReceive(joules float64) {
	l.ReceiveJ += joules
}

// Total sums every state's accumulated energy.
func (l *Ledger) Total() float64 {
	return l.IdleJ + l.ProcessingJ + l.TransmitJ + l.ReceiveJ
}

// Package report defines the per-policy summary record and its CSV export.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Record is one policy run's aggregate metrics plus a few additional
// diagnostic/bookkeeping fields.
type Record struct {
	Policy             string
	Config             string
	CompletionRate     float64
	Utilization        float64
	LoadBalanceStdDev  float64
	LoadBalanceMinMax  float64
	AvgResponseMs      float64
	TotalEnergyJ       float64
	OffloadRate        float64
	Messages           int
	Dropped            int
	StillInFlightAtEnd int
	Generated          int
	Completed          int
	Failed             int
	HostCPUPercent     float64 // diagnostic only, not fed back into the run
}

var csvHeader = []string{
	"policy", "config", "completion_rate", "utilization",
	"load_balance_stddev", "load_balance_minmax", "avg_response_ms",
	"total_energy_j", "offload_rate", "messages", "dropped",
	"still_in_flight_at_end", "generated", "completed", "failed",
	"host_cpu_percent",
}

func (r Record) row() []string {
	f := strconv.FormatFloat
	return []string{
		r.Policy, r.Config,
		f(r.CompletionRate, 'f', 6, 64),
		f(r.Utilization, 'f', 6, 64),
		f(r.LoadBalanceStdDev, 'f', 6, 64),
		f(r.LoadBalanceMinMax, 'f', 6, 64),
		f(r.AvgResponseMs, 'f', 6, 64),
		f(r.TotalEnergyJ, 'f', 6, 64),
		f(r.OffloadRate, 'f', 6, 64),
		strconv.Itoa(r.Messages),
		strconv.Itoa(r.Dropped),
		strconv.Itoa(r.StillInFlightAtEnd),
		strconv.Itoa(r.Generated),
		strconv.Itoa(r.Completed),
		strconv.Itoa(r.Failed),
		f(r.HostCPUPercent, 'f', 2, 64),
	}
}

// WriteCSV writes the header followed by one row per record.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

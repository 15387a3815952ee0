// Package history persists finished run reports across invocations, so
// successive benchmarking runs can be compared without re-parsing stdout.
// Generalizes a CRUD-repository style database layer into a single
// append-only metrics table instead of CRUD resources.
package history

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/durga79/Iot-Edge-CLoud-Offloading/internal/report"
)

// recordRow is the persisted shape of a report.Record, plus an
// auto-incrementing primary key and wall-clock save time.
type recordRow struct {
	gorm.Model
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
}

func (recordRow) TableName() string { return "report_records" }

// Store wraps a sqlite-backed gorm.DB holding one auto-migrated table.
type Store struct {
	db *gorm.DB
}

// Open creates or attaches to the sqlite file at path and migrates the
// report_records table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save appends one finished run's record.
func (s *Store) Save(r report.Record) error {
	row := recordRow{
		Policy:             r.Policy,
		Config:             r.Config,
		CompletionRate:     r.CompletionRate,
		Utilization:        r.Utilization,
		LoadBalanceStdDev:  r.LoadBalanceStdDev,
		LoadBalanceMinMax:  r.LoadBalanceMinMax,
		AvgResponseMs:      r.AvgResponseMs,
		TotalEnergyJ:       r.TotalEnergyJ,
		OffloadRate:        r.OffloadRate,
		Messages:           r.Messages,
		Dropped:            r.Dropped,
		StillInFlightAtEnd: r.StillInFlightAtEnd,
		Generated:          r.Generated,
		Completed:          r.Completed,
		Failed:             r.Failed,
	}
	return s.db.Create(&row).Error
}

// Recent returns the last n saved records across all policies, most
// recent first.
func (s *Store) Recent(n int) ([]report.Record, error) {
	var rows []recordRow
	if err := s.db.Order("id desc").Limit(n).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.Record{
			Policy:             row.Policy,
			Config:             row.Config,
			CompletionRate:     row.CompletionRate,
			Utilization:        row.Utilization,
			LoadBalanceStdDev:  row.LoadBalanceStdDev,
			LoadBalanceMinMax:  row.LoadBalanceMinMax,
			AvgResponseMs:      row.AvgResponseMs,
			TotalEnergyJ:       row.TotalEnergyJ,
			OffloadRate:        row.OffloadRate,
			Messages:           row.Messages,
			Dropped:            row.Dropped,
			StillInFlightAtEnd: row.StillInFlightAtEnd,
			Generated:          row.Generated,
			Completed:          row.Completed,
			Failed:             row.Failed,
		})
	}
	return out, nil
}

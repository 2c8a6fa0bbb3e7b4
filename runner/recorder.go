package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BaSui01/taskmesh/types"
)

// RoundRecord is one committed assignment in the round history table.
// History is owned by the harness, written once per round, and never
// read back into preference computation.
type RoundRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Round     int       `gorm:"index"`
	TaskIndex int
	Members   string // comma-joined agent ids
	Cost      float64
	Mode      string // "pair" or "solo"
	CreatedAt time.Time
}

// Recorder persists round history to a local sqlite database.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder opens (or creates) the history database at path. Use
// ":memory:" for a throwaway database in tests.
func NewRecorder(path string, logger *zap.Logger) (*Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&RoundRecord{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &Recorder{
		db:     db,
		logger: logger.With(zap.String("component", "recorder")),
	}, nil
}

// RecordRound writes one row per committed assignment.
func (r *Recorder) RecordRound(round int, completed []types.Assignment) error {
	if len(completed) == 0 {
		return nil
	}

	records := make([]RoundRecord, 0, len(completed))
	for _, a := range completed {
		mode := "solo"
		if a.Pair() {
			mode = "pair"
		}
		ids := make([]string, len(a.Members))
		for i, id := range a.Members {
			ids[i] = string(id)
		}
		records = append(records, RoundRecord{
			Round:     round,
			TaskIndex: a.TaskIndex,
			Members:   strings.Join(ids, ","),
			Cost:      a.Cost,
			Mode:      mode,
		})
	}

	if err := r.db.Create(&records).Error; err != nil {
		return fmt.Errorf("write round %d history: %w", round, err)
	}
	return nil
}

// History returns every recorded assignment in round order.
func (r *Recorder) History() ([]RoundRecord, error) {
	var records []RoundRecord
	if err := r.db.Order("round, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return records, nil
}

// Close releases the underlying database handle.
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

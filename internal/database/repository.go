package database

import (
	"time"

	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(run *Run) error {
	return r.db.Create(run).Error
}

func (r *RunRepository) GetRunByID(id uint) (*Run, error) {
	var run Run
	if err := r.db.First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(limit, offset int) ([]Run, error) {
	var runs []Run
	if err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) FinishRun(run *Run, status, summary string) error {
	now := time.Now()
	run.Status = status
	run.Summary = summary
	run.FinishedAt = &now

	return r.db.Model(&Run{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":       status,
			"summary":      summary,
			"rows_seen":    run.RowsSeen,
			"rows_parsed":  run.RowsParsed,
			"rows_dropped": run.RowsDropped,
			"finished_at":  now,
		}).Error
}

func (r *RunRepository) AddExport(e *RegionExport) error {
	return r.db.Create(e).Error
}

func (r *RunRepository) GetExportsByRunID(runID uint) ([]RegionExport, error) {
	var exports []RegionExport
	if err := r.db.Where("run_id = ?", runID).Order("id ASC").Find(&exports).Error; err != nil {
		return nil, err
	}
	return exports, nil
}

func (r *RunRepository) AddCheckResult(c *CheckResult) error {
	return r.db.Create(c).Error
}

func (r *RunRepository) GetChecksByRunID(runID uint) ([]CheckResult, error) {
	var checks []CheckResult
	if err := r.db.Where("run_id = ?", runID).Order("id ASC").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

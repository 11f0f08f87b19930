package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(job *model.AnalysisJob) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) GetByID(id string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetActiveByUserID 获取用户最新的进行中任务（QUEUED/RUNNING）
func (r *JobRepository) GetActiveByUserID(userID int64) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.db.Where("user_id = ? AND status IN ?", userID,
		[]string{model.JobStatusQueued, model.JobStatusRunning}).
		Order("created_at DESC").
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetLatestByUserID 获取用户最新一条任务，不限状态
func (r *JobRepository) GetLatestByUserID(userID int64) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(job *model.AnalysisJob) error {
	return r.db.Save(job).Error
}

// UpdateProgress 更新任务的状态字段，字段级 last-write-wins
func (r *JobRepository) UpdateProgress(id string, updates map[string]interface{}) error {
	return r.db.Model(&model.AnalysisJob{}).Where("id = ?", id).Updates(updates).Error
}

// FailStaleRunning 将超时未完成的 RUNNING 任务置为 FAILED，返回影响行数
func (r *JobRepository) FailStaleRunning(cutoff time.Time, errMsg string) (int64, error) {
	now := time.Now()
	result := r.db.Model(&model.AnalysisJob{}).
		Where("status = ? AND started_at < ?", model.JobStatusRunning, cutoff).
		Updates(map[string]interface{}{
			"status":        model.JobStatusFailed,
			"error_message": errMsg,
			"completed_at":  now,
		})
	return result.RowsAffected, result.Error
}

// DeleteOlderThan 删除早于保留期的历史任务，返回影响行数
func (r *JobRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ? AND status IN ?", cutoff,
		[]string{model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled}).
		Delete(&model.AnalysisJob{})
	return result.RowsAffected, result.Error
}

package model

import (
	"time"
)

// Job 状态
const (
	JobStatusQueued    = "QUEUED"
	JobStatusRunning   = "RUNNING"
	JobStatusCompleted = "COMPLETED"
	JobStatusFailed    = "FAILED"
	JobStatusCancelled = "CANCELLED"
)

// IsTerminalStatus 终态判断：终态后 Job 行不再被管线更新
func IsTerminalStatus(status string) bool {
	return status == JobStatusCompleted || status == JobStatusFailed || status == JobStatusCancelled
}

type AnalysisJob struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       int64      `gorm:"not null;index" json:"user_id"`
	Plan         string     `gorm:"size:20;not null;default:free" json:"plan"`
	Status       string     `gorm:"size:20;default:QUEUED;index" json:"status"` // QUEUED, RUNNING, COMPLETED, FAILED, CANCELLED
	CurrentStage string     `gorm:"size:50" json:"current_stage,omitempty"`
	Progress     int        `gorm:"default:0" json:"progress"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (AnalysisJob) TableName() string {
	return "analysis_jobs"
}

package dto

import (
	"time"
)

// TriggerAnalysisRequest 触发分析请求
type TriggerAnalysisRequest struct {
	Plan string `json:"plan"`
}

// TriggerAnalysisResponse 触发分析响应
type TriggerAnalysisResponse struct {
	Queued bool   `json:"queued"`
	Plan   string `json:"plan"`
}

// JobStatusResponse Job 对外投影
type JobStatusResponse struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	Status       string     `json:"status"`
	CurrentStage string     `json:"current_stage,omitempty"`
	Progress     int        `json:"progress"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Error        string     `json:"error,omitempty"`
}

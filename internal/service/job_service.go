package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/model/dto"
	"github.com/qs3c/devprofile_go_server/internal/pkg/queue"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrJobNotFound  = errors.New("任务不存在")
)

// JobService 任务读路径（Query Facade）与触发入口。
// 读路径只查 Job Store，不依赖进程内索引，重启后依然正确。
type JobService struct {
	jobRepo      *repository.JobRepository
	userRepo     *repository.UserRepository
	triggerQueue *queue.Queue
}

func NewJobService(jobRepo *repository.JobRepository, userRepo *repository.UserRepository, triggerQueue *queue.Queue) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		triggerQueue: triggerQueue,
	}
}

// TriggerAnalysis 校验用户后将触发消息入队。不检查是否已有在途任务：
// 重复触发会产生新任务并接管索引条目，旧任务被孤立（读路径仍展示最新任务）。
func (s *JobService) TriggerAnalysis(ctx context.Context, userID int64, plan string) (*dto.TriggerAnalysisResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if plan == "" {
		plan = user.Plan
	}
	plan = strings.ToLower(plan)

	if err := s.triggerQueue.Push(ctx, &queue.TriggerMessage{UserID: userID, Plan: plan}); err != nil {
		return nil, err
	}

	return &dto.TriggerAnalysisResponse{Queued: true, Plan: plan}, nil
}

// GetCurrentJob 返回用户最新的进行中任务；没有进行中任务时回落到
// 最新的历史任务；从未触发过分析返回 ErrJobNotFound。
func (s *JobService) GetCurrentJob(userID int64) (*dto.JobStatusResponse, error) {
	job, err := s.jobRepo.GetActiveByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		job, err = s.jobRepo.GetLatestByUserID(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
	}
	if err != nil {
		return nil, err
	}
	return jobToDTO(job), nil
}

// GetJobByID 按任务 ID 查询
func (s *JobService) GetJobByID(id string) (*dto.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return jobToDTO(job), nil
}

func jobToDTO(job *model.AnalysisJob) *dto.JobStatusResponse {
	return &dto.JobStatusResponse{
		ID:           job.ID,
		UserID:       job.UserID,
		Status:       job.Status,
		CurrentStage: job.CurrentStage,
		Progress:     job.Progress,
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		Error:        job.ErrorMessage,
	}
}

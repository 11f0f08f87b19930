package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pkg/pubsub"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// TriggerProgress 触发后 Job 行的初始进度
const TriggerProgress = 5

// ProgressPublisher 进度对外转发（WebSocket 推送走 redis 中继），可选
type ProgressPublisher interface {
	PublishProgress(ctx context.Context, msg *pubsub.ProgressMessage) error
}

// ProgressTracker 管线的编排核心：Job 状态的唯一写入方。
// 消费触发事件和阶段进度事件，维护 Job Index 并落库状态变更。
// 持久化失败只记录日志不重试，事件按已处理对待（at-most-once）。
type ProgressTracker struct {
	jobRepo *repository.JobRepository
	index   *JobIndex
	relay   ProgressPublisher // 可为 nil
}

func NewProgressTracker(jobRepo *repository.JobRepository, index *JobIndex, relay ProgressPublisher) *ProgressTracker {
	return &ProgressTracker{
		jobRepo: jobRepo,
		index:   index,
		relay:   relay,
	}
}

// Index 暴露 Job Index，仅供装配和测试使用
func (t *ProgressTracker) Index() *JobIndex {
	return t.index
}

// HandleTrigger 处理触发事件：生成任务 ID，登记索引（覆盖该用户既有条目），
// 无条件创建 Job 行。同一用户并发触发会产生两行 Job，旧行从索引上脱离，
// 后续阶段事件只会路由到新行。
func (t *ProgressTracker) HandleTrigger(ctx context.Context, event TriggerEvent) {
	jobID := uuid.NewString()
	now := time.Now()

	t.index.Put(event.UserID, jobID)

	job := &model.AnalysisJob{
		ID:           jobID,
		UserID:       event.UserID,
		Plan:         event.Plan,
		Status:       model.JobStatusRunning,
		CurrentStage: StageFetchingCommits,
		Progress:     TriggerProgress,
		StartedAt:    &now,
	}
	if err := t.jobRepo.Create(job); err != nil {
		log.Printf("tracker: failed to create job %s for user %d: %v", jobID, event.UserID, err)
		return
	}

	log.Printf("tracker: job %s started for user %d (plan=%s)", jobID, event.UserID, event.Plan)
	t.publishRelay(ctx, event.UserID, jobID, model.JobStatusRunning, StageFetchingCommits, TriggerProgress, "")
}

// HandleStageProgress 处理阶段进度事件：经索引解析任务 ID，缺失则丢弃；
// 更新 status/stage/progress/error，COMPLETED 时落 completed_at；
// 终态（COMPLETED/FAILED）摘除索引条目。
func (t *ProgressTracker) HandleStageProgress(ctx context.Context, event StageProgressEvent) {
	jobID, ok := t.index.Get(event.UserID)
	if !ok {
		// 触发前到达或任务已终结的迟到事件，按设计丢弃
		log.Printf("tracker: no active job for user %d, dropping %s event", event.UserID, event.CurrentStage)
		return
	}

	updates := map[string]interface{}{
		"status":        event.Status,
		"current_stage": event.CurrentStage,
		"progress":      event.Progress,
	}
	if event.Error != "" {
		updates["error_message"] = event.Error
	}
	if event.Status == model.JobStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	if err := t.jobRepo.UpdateProgress(jobID, updates); err != nil {
		// best-effort：不重试，Job 行停留在上一次成功写入的阶段
		log.Printf("tracker: failed to update job %s: %v", jobID, err)
	}

	if event.Status == model.JobStatusCompleted || event.Status == model.JobStatusFailed {
		t.index.Delete(event.UserID)
		log.Printf("tracker: job %s reached %s, index entry for user %d retired", jobID, event.Status, event.UserID)
	}

	t.publishRelay(ctx, event.UserID, jobID, event.Status, event.CurrentStage, event.Progress, event.Error)
}

func (t *ProgressTracker) publishRelay(ctx context.Context, userID int64, jobID, status, stage string, progress int, errMsg string) {
	if t.relay == nil {
		return
	}
	err := t.relay.PublishProgress(ctx, &pubsub.ProgressMessage{
		UserID:   userID,
		JobID:    jobID,
		Status:   status,
		Stage:    stage,
		Progress: progress,
		Error:    errMsg,
	})
	if err != nil {
		log.Printf("tracker: failed to relay progress for job %s: %v", jobID, err)
	}
}

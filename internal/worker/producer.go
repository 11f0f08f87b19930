// Package worker 实现管线的各个阶段生产者。
// 每个生产者订阅唯一的上游事件，完成本阶段工作后发布阶段进度事件，
// 成功时再发布下游事件；失败时只发布 FAILED 进度事件，管线就此中止。
package worker

import (
	"context"
	"log"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
)

// emitter 生产者共用的进度上报
type emitter struct {
	bus *eventbus.Bus
}

// progress 上报 RUNNING 进度
func (e emitter) progress(ctx context.Context, userID int64, stage string, progress int) {
	e.bus.Publish(ctx, pipeline.StageProgressEvent{
		UserID:       userID,
		Status:       model.JobStatusRunning,
		CurrentStage: stage,
		Progress:     progress,
	})
}

// completed 上报终态 COMPLETED，进度 100
func (e emitter) completed(ctx context.Context, userID int64, stage string) {
	e.bus.Publish(ctx, pipeline.StageProgressEvent{
		UserID:       userID,
		Status:       model.JobStatusCompleted,
		CurrentStage: stage,
		Progress:     100,
	})
}

// failed 上报 FAILED 和可读错误信息，不发布下游事件
func (e emitter) failed(ctx context.Context, userID int64, stage string, err error) {
	log.Printf("worker: stage %s failed for user %d: %v", stage, userID, err)
	e.bus.Publish(ctx, pipeline.StageProgressEvent{
		UserID:       userID,
		Status:       model.JobStatusFailed,
		CurrentStage: stage,
		Progress:     pipeline.StageProgressValues[stage],
		Error:        err.Error(),
	})
}

package worker

import (
	"context"
	"fmt"

	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

// LayerProducer ARCHITECTURE_LAYER 阶段：架构分层分类。
// 与任务生成、技术栈检测、投入分布共享同一上游事件，彼此并发执行。
type LayerProducer struct {
	emitter
	layers *service.LayerService
	plans  *service.PlanService
}

func NewLayerProducer(bus *eventbus.Bus, layers *service.LayerService, plans *service.PlanService) *LayerProducer {
	return &LayerProducer{
		emitter: emitter{bus: bus},
		layers:  layers,
		plans:   plans,
	}
}

func (l *LayerProducer) Stage() string        { return pipeline.StageArchitectureLayer }
func (l *LayerProducer) SubscribesTo() string { return pipeline.TopicAnalysisPersisted }

func (l *LayerProducer) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.AnalysisPersistedEvent)
	if !ok {
		return
	}

	policy := l.plans.PolicyFor(e.Plan)
	if err := l.layers.Recompute(e.UserID, l.plans.WindowStart(policy)); err != nil {
		l.failed(ctx, e.UserID, l.Stage(), fmt.Errorf("layer classification failed: %w", err))
		return
	}

	l.progress(ctx, e.UserID, l.Stage(), pipeline.StageProgressValues[l.Stage()])
}

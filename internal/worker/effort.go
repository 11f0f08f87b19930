package worker

import (
	"context"
	"fmt"

	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

// 投入分布开工时的进度值，终态由 completed 统一上报 100
const effortStartProgress = 95

// EffortProducer EFFORT_DISTRIBUTION 阶段：投入分布分类。
// 扇出分支中的末位上报者：成功后上报 COMPLETED/100。
type EffortProducer struct {
	emitter
	effort *service.EffortService
	plans  *service.PlanService
}

func NewEffortProducer(bus *eventbus.Bus, effort *service.EffortService, plans *service.PlanService) *EffortProducer {
	return &EffortProducer{
		emitter: emitter{bus: bus},
		effort:  effort,
		plans:   plans,
	}
}

func (p *EffortProducer) Stage() string        { return pipeline.StageEffortDistribution }
func (p *EffortProducer) SubscribesTo() string { return pipeline.TopicAnalysisPersisted }

func (p *EffortProducer) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.AnalysisPersistedEvent)
	if !ok {
		return
	}

	p.progress(ctx, e.UserID, p.Stage(), effortStartProgress)

	policy := p.plans.PolicyFor(e.Plan)
	if err := p.effort.Recompute(e.UserID, p.plans.WindowStart(policy)); err != nil {
		p.failed(ctx, e.UserID, p.Stage(), fmt.Errorf("effort classification failed: %w", err))
		return
	}

	p.completed(ctx, e.UserID, p.Stage())
}

package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/pkg/llm"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

// MissionGenerator 任务生成所依赖的 LLM 能力
type MissionGenerator interface {
	GenerateMissions(ctx context.Context, activitySummary string) ([]llm.Mission, error)
}

// MissionProducer GENERATING_MISSIONS/AI_ANALYSIS 阶段：
// 汇总窗口内的提交活动，调用 LLM 生成成长任务并整组替换持久化
type MissionProducer struct {
	emitter
	generator   MissionGenerator
	commitRepo  *repository.CommitRepository
	missionRepo *repository.MissionRepository
	plans       *service.PlanService
}

func NewMissionProducer(
	bus *eventbus.Bus,
	generator MissionGenerator,
	commitRepo *repository.CommitRepository,
	missionRepo *repository.MissionRepository,
	plans *service.PlanService,
) *MissionProducer {
	return &MissionProducer{
		emitter:     emitter{bus: bus},
		generator:   generator,
		commitRepo:  commitRepo,
		missionRepo: missionRepo,
		plans:       plans,
	}
}

func (m *MissionProducer) Stage() string        { return pipeline.StageGeneratingMissions }
func (m *MissionProducer) SubscribesTo() string { return pipeline.TopicAnalysisPersisted }

func (m *MissionProducer) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.AnalysisPersistedEvent)
	if !ok {
		return
	}

	m.progress(ctx, e.UserID, pipeline.StageGeneratingMissions,
		pipeline.StageProgressValues[pipeline.StageGeneratingMissions])

	policy := m.plans.PolicyFor(e.Plan)
	records, err := m.commitRepo.ListSince(e.UserID, m.plans.WindowStart(policy))
	if err != nil {
		m.failed(ctx, e.UserID, pipeline.StageGeneratingMissions, fmt.Errorf("failed to load commits: %w", err))
		return
	}

	summary := buildActivitySummary(records)

	m.progress(ctx, e.UserID, pipeline.StageAIAnalysis,
		pipeline.StageProgressValues[pipeline.StageAIAnalysis])

	generated, err := m.generator.GenerateMissions(ctx, summary)
	if err != nil {
		m.failed(ctx, e.UserID, pipeline.StageAIAnalysis, fmt.Errorf("mission generation failed: %w", err))
		return
	}

	missions := make([]*model.Mission, 0, len(generated))
	for _, g := range generated {
		missions = append(missions, &model.Mission{
			UserID:      e.UserID,
			Title:       g.Title,
			Description: g.Description,
			Category:    g.Category,
		})
	}

	if err := m.missionRepo.ReplaceForUser(e.UserID, missions); err != nil {
		m.failed(ctx, e.UserID, pipeline.StageAIAnalysis, fmt.Errorf("failed to persist missions: %w", err))
		return
	}
}

// buildActivitySummary 为 LLM 构造提交活动摘要：类别计数 + 最近的提交信息样本
func buildActivitySummary(records []*model.CommitRecord) string {
	counts := make(map[string]int)
	for _, r := range records {
		counts[service.ClassifyMessage(r.Message)]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total commits: %d\n", len(records))
	for category, count := range counts {
		fmt.Fprintf(&b, "%s: %d\n", category, count)
	}

	b.WriteString("Recent commit messages:\n")
	sample := records
	if len(sample) > 20 {
		sample = sample[len(sample)-20:]
	}
	for _, r := range sample {
		// 只取首行，提交正文对分类无额外价值
		line := r.Message
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}

	return b.String()
}

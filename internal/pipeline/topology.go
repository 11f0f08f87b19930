package pipeline

import (
	"context"
	"fmt"

	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
)

// Producer 阶段生产者：订阅唯一的上游主题，完成本阶段工作后
// 发布阶段进度事件，成功时再发布下游事件。
type Producer interface {
	Stage() string
	SubscribesTo() string
	Handle(ctx context.Context, event eventbus.Event)
}

// StageSpec 阶段在拓扑中的声明
type StageSpec struct {
	Stage          string
	SubscribesTo   string
	EmitsOnSuccess string // 为空表示管线末端
}

// Topology 管线拓扑。调度策略就是这张图：每个阶段只响应其上游事件，
// 订阅同一上游主题的阶段彼此并发（扇出）。
var Topology = []StageSpec{
	{Stage: StageFetchingCommits, SubscribesTo: TopicAnalysisTriggered, EmitsOnSuccess: TopicCommitsFetched},
	{Stage: StageAnalyzingCommits, SubscribesTo: TopicCommitsFetched, EmitsOnSuccess: TopicCommitsAnalyzed},
	{Stage: StagePersistingData, SubscribesTo: TopicCommitsAnalyzed, EmitsOnSuccess: TopicAnalysisPersisted},
	// 以下四个阶段共享同一上游事件，独立并发执行
	{Stage: StageGeneratingMissions, SubscribesTo: TopicAnalysisPersisted},
	{Stage: StageTechStackDNA, SubscribesTo: TopicAnalysisPersisted},
	{Stage: StageArchitectureLayer, SubscribesTo: TopicAnalysisPersisted},
	{Stage: StageEffortDistribution, SubscribesTo: TopicAnalysisPersisted},
}

// SpecFor 查询阶段声明
func SpecFor(stage string) (StageSpec, bool) {
	for _, spec := range Topology {
		if spec.Stage == stage {
			return spec, true
		}
	}
	return StageSpec{}, false
}

// Consumers 返回订阅某主题的阶段名
func Consumers(topic string) []string {
	var stages []string
	for _, spec := range Topology {
		if spec.SubscribesTo == topic {
			stages = append(stages, spec.Stage)
		}
	}
	return stages
}

// Wire 按拓扑把追踪器和所有生产者接到总线上。
// 每个生产者的订阅主题必须与其阶段在拓扑中的声明一致。
func Wire(bus *eventbus.Bus, tracker *ProgressTracker, producers ...Producer) error {
	bus.Subscribe(TopicAnalysisTriggered, func(ctx context.Context, event eventbus.Event) {
		if e, ok := event.(TriggerEvent); ok {
			tracker.HandleTrigger(ctx, e)
		}
	})
	bus.Subscribe(TopicStageProgress, func(ctx context.Context, event eventbus.Event) {
		if e, ok := event.(StageProgressEvent); ok {
			tracker.HandleStageProgress(ctx, e)
		}
	})

	for _, p := range producers {
		spec, ok := SpecFor(p.Stage())
		if !ok {
			return fmt.Errorf("stage %s not declared in topology", p.Stage())
		}
		if spec.SubscribesTo != p.SubscribesTo() {
			return fmt.Errorf("stage %s subscribes to %s, topology declares %s",
				p.Stage(), p.SubscribesTo(), spec.SubscribesTo)
		}
		bus.Subscribe(p.SubscribesTo(), p.Handle)
	}

	return nil
}

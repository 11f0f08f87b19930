package pipeline

import (
	"github.com/qs3c/devprofile_go_server/internal/vcs"
)

// 事件主题
const (
	TopicAnalysisTriggered = "analysis.triggered"
	TopicCommitsFetched    = "analysis.commits_fetched"
	TopicCommitsAnalyzed   = "analysis.commits_analyzed"
	TopicAnalysisPersisted = "analysis.persisted"
	TopicStageProgress     = "analysis.stage_progress"
)

// 阶段标识，同时用于进度上报和 Job 行
const (
	StageFetchingCommits    = "FETCHING_COMMITS"
	StageAnalyzingCommits   = "ANALYZING_COMMITS"
	StagePersistingData     = "PERSISTING_DATA"
	StageGeneratingMissions = "GENERATING_MISSIONS"
	StageAIAnalysis         = "AI_ANALYSIS"
	StageTechStackDNA       = "TECH_STACK_DNA"
	StageTechDetection      = "TECH_DETECTION"
	StageArchitectureLayer  = "ARCHITECTURE_LAYER"
	StageEffortDistribution = "EFFORT_DISTRIBUTION"
)

// StageProgressValues 阶段对应的进度百分比（happy path 单调路径）
var StageProgressValues = map[string]int{
	StageFetchingCommits:    15,
	StageAnalyzingCommits:   45,
	StagePersistingData:     60,
	StageGeneratingMissions: 70,
	StageAIAnalysis:         80,
	StageTechStackDNA:       75,
	StageTechDetection:      85,
	StageArchitectureLayer:  92,
	StageEffortDistribution: 100,
}

// TriggerEvent 一次分析请求的起点
type TriggerEvent struct {
	UserID int64
	Plan   string
}

func (TriggerEvent) Topic() string { return TopicAnalysisTriggered }

// StageProgressEvent 阶段进度上报，经 Job Index 路由到 Job 行
type StageProgressEvent struct {
	UserID       int64
	Status       string
	CurrentStage string
	Progress     int
	Error        string
}

func (StageProgressEvent) Topic() string { return TopicStageProgress }

// CommitsFetchedEvent 提交拉取完成，携带下游所需的原始提交
type CommitsFetchedEvent struct {
	UserID  int64
	Plan    string
	Commits []vcs.Commit
}

func (CommitsFetchedEvent) Topic() string { return TopicCommitsFetched }

// AnalyzedCommit 带派生信号的提交
type AnalyzedCommit struct {
	vcs.Commit
	Churn int // additions + deletions
}

// CommitsAnalyzedEvent 提交分析完成
type CommitsAnalyzedEvent struct {
	UserID  int64
	Plan    string
	Commits []AnalyzedCommit
}

func (CommitsAnalyzedEvent) Topic() string { return TopicCommitsAnalyzed }

// AnalysisPersistedEvent 提交数据落库完成。四个下游分类/生成阶段
// 都订阅此事件，彼此独立并发（扇出）。
type AnalysisPersistedEvent struct {
	UserID int64
	Plan   string
}

func (AnalysisPersistedEvent) Topic() string { return TopicAnalysisPersisted }

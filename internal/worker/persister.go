package worker

import (
	"context"
	"fmt"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// AnalysisPersister PERSISTING_DATA 阶段：将已分析提交落库，
// 为下游的分类/生成阶段提供按窗口查询的数据
type AnalysisPersister struct {
	emitter
	commitRepo *repository.CommitRepository
}

func NewAnalysisPersister(bus *eventbus.Bus, commitRepo *repository.CommitRepository) *AnalysisPersister {
	return &AnalysisPersister{
		emitter:    emitter{bus: bus},
		commitRepo: commitRepo,
	}
}

func (p *AnalysisPersister) Stage() string        { return pipeline.StagePersistingData }
func (p *AnalysisPersister) SubscribesTo() string { return pipeline.TopicCommitsAnalyzed }

func (p *AnalysisPersister) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.CommitsAnalyzedEvent)
	if !ok {
		return
	}

	records := make([]*model.CommitRecord, 0, len(e.Commits))
	for _, commit := range e.Commits {
		records = append(records, &model.CommitRecord{
			UserID:     e.UserID,
			SHA:        commit.SHA,
			Repository: commit.Repository,
			Message:    commit.Message,
			AuthorDate: commit.AuthorDate,
			Additions:  commit.Additions,
			Deletions:  commit.Deletions,
			Files:      model.StringArray(commit.Files),
		})
	}

	if err := p.commitRepo.ReplaceForUser(e.UserID, records); err != nil {
		p.failed(ctx, e.UserID, p.Stage(), fmt.Errorf("failed to persist commits: %w", err))
		return
	}

	p.progress(ctx, e.UserID, p.Stage(), pipeline.StageProgressValues[p.Stage()])
	p.bus.Publish(ctx, pipeline.AnalysisPersistedEvent{
		UserID: e.UserID,
		Plan:   e.Plan,
	})
}

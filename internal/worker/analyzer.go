package worker

import (
	"context"

	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
)

// CommitAnalyzer ANALYZING_COMMITS 阶段：为每条提交计算派生信号
type CommitAnalyzer struct {
	emitter
}

func NewCommitAnalyzer(bus *eventbus.Bus) *CommitAnalyzer {
	return &CommitAnalyzer{emitter: emitter{bus: bus}}
}

func (a *CommitAnalyzer) Stage() string        { return pipeline.StageAnalyzingCommits }
func (a *CommitAnalyzer) SubscribesTo() string { return pipeline.TopicCommitsFetched }

func (a *CommitAnalyzer) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.CommitsFetchedEvent)
	if !ok {
		return
	}

	analyzed := make([]pipeline.AnalyzedCommit, 0, len(e.Commits))
	for _, commit := range e.Commits {
		analyzed = append(analyzed, pipeline.AnalyzedCommit{
			Commit: commit,
			Churn:  commit.Additions + commit.Deletions,
		})
	}

	a.progress(ctx, e.UserID, a.Stage(), pipeline.StageProgressValues[a.Stage()])
	a.bus.Publish(ctx, pipeline.CommitsAnalyzedEvent{
		UserID:  e.UserID,
		Plan:    e.Plan,
		Commits: analyzed,
	})
}

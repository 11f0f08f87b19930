package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
	"github.com/qs3c/devprofile_go_server/internal/vcs"
)

// CommitFetcher FETCHING_COMMITS 阶段：按套餐窗口从数据源拉取提交
type CommitFetcher struct {
	emitter
	source   vcs.CommitSource
	userRepo *repository.UserRepository
	plans    *service.PlanService
}

func NewCommitFetcher(bus *eventbus.Bus, source vcs.CommitSource, userRepo *repository.UserRepository, plans *service.PlanService) *CommitFetcher {
	return &CommitFetcher{
		emitter:  emitter{bus: bus},
		source:   source,
		userRepo: userRepo,
		plans:    plans,
	}
}

func (f *CommitFetcher) Stage() string        { return pipeline.StageFetchingCommits }
func (f *CommitFetcher) SubscribesTo() string { return pipeline.TopicAnalysisTriggered }

func (f *CommitFetcher) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.TriggerEvent)
	if !ok {
		return
	}

	user, err := f.userRepo.GetByID(e.UserID)
	if err != nil {
		f.failed(ctx, e.UserID, f.Stage(), fmt.Errorf("failed to load user: %w", err))
		return
	}

	login := user.GithubLogin
	if login == "" {
		login = user.Username
	}

	policy := f.plans.PolicyFor(e.Plan)
	opts := vcs.FetchOptions{
		Since:             f.plans.WindowStart(policy),
		MaxCommits:        policy.MaxCommits,
		MaxFilesPerCommit: policy.MaxFilesPerCommit,
		MaxRepositories:   policy.MaxRepositories,
	}

	repos, err := f.source.ListRepositories(ctx, login, opts)
	if err != nil {
		f.failed(ctx, e.UserID, f.Stage(), fmt.Errorf("failed to list repositories: %w", err))
		return
	}

	var commits []vcs.Commit
	for _, repo := range repos {
		repoCommits, err := f.source.ListCommits(ctx, login, repo.FullName, opts)
		if err != nil {
			f.failed(ctx, e.UserID, f.Stage(), fmt.Errorf("failed to list commits for %s: %w", repo.FullName, err))
			return
		}
		commits = append(commits, repoCommits...)
		if opts.MaxCommits > 0 && len(commits) >= opts.MaxCommits {
			commits = commits[:opts.MaxCommits]
			break
		}
	}

	log.Printf("fetcher: user %d, %d commits across %d repos", e.UserID, len(commits), len(repos))

	f.progress(ctx, e.UserID, f.Stage(), pipeline.StageProgressValues[f.Stage()])
	f.bus.Publish(ctx, pipeline.CommitsFetchedEvent{
		UserID:  e.UserID,
		Plan:    e.Plan,
		Commits: commits,
	})
}

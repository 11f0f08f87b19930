package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	user := &model.User{
		Username:    fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000),
		GithubLogin: "octocat",
		Plan:        "free",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithPlan 设置用户套餐
func WithPlan(plan string) func(*model.User) {
	return func(u *model.User) {
		u.Plan = plan
	}
}

// WithGithubLogin 设置 GitHub 登录名
func WithGithubLogin(login string) func(*model.User) {
	return func(u *model.User) {
		u.GithubLogin = login
	}
}

// TestJob 创建测试任务
func TestJob(t *testing.T, db *gorm.DB, userID int64, status string, opts ...func(*model.AnalysisJob)) *model.AnalysisJob {
	t.Helper()

	now := time.Now()
	job := &model.AnalysisJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		Plan:      "free",
		Status:    status,
		Progress:  5,
		StartedAt: &now,
	}

	for _, opt := range opts {
		opt(job)
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}

// WithStage 设置任务当前阶段
func WithStage(stage string, progress int) func(*model.AnalysisJob) {
	return func(j *model.AnalysisJob) {
		j.CurrentStage = stage
		j.Progress = progress
	}
}

// TestCommit 创建测试提交记录
func TestCommit(t *testing.T, db *gorm.DB, userID int64, message string, authorDate time.Time, files ...string) *model.CommitRecord {
	t.Helper()

	record := &model.CommitRecord{
		UserID:     userID,
		SHA:        uuid.NewString()[:8],
		Repository: "octocat/example",
		Message:    message,
		AuthorDate: authorDate,
		Additions:  10,
		Deletions:  2,
		Files:      model.StringArray(files),
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("Failed to create test commit: %v", err)
	}

	return record
}

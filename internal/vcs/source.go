// Package vcs 定义管线消费的版本控制数据源接口。
// 具体实现（GitHub/GitLab 客户端）作为外部协作方注入。
package vcs

import (
	"context"
	"time"
)

// Commit 单条提交元数据
type Commit struct {
	SHA        string
	Repository string
	Message    string
	AuthorDate time.Time
	Additions  int
	Deletions  int
	Files      []string
}

// Repository 仓库元数据
type Repository struct {
	Name     string
	FullName string
	Language string
	Fork     bool
}

// FetchOptions 拉取范围：窗口起点和套餐决定的量级上限
type FetchOptions struct {
	Since             time.Time
	MaxCommits        int
	MaxFilesPerCommit int
	MaxRepositories   int
}

// CommitSource 提交数据源。任何错误（认证、限流）都由调用方视为阶段失败。
type CommitSource interface {
	ListRepositories(ctx context.Context, login string, opts FetchOptions) ([]Repository, error)
	ListCommits(ctx context.Context, login, repo string, opts FetchOptions) ([]Commit, error)
}

// Package github 实现 vcs.CommitSource 的 GitHub REST 适配器。
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/qs3c/devprofile_go_server/internal/vcs"
)

const defaultBaseURL = "https://api.github.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

type repoPayload struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Language string `json:"language"`
	Fork     bool   `json:"fork"`
	PushedAt string `json:"pushed_at"`
}

type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Stats struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
	Files []struct {
		Filename string `json:"filename"`
	} `json:"files"`
}

// ListRepositories 拉取用户仓库，排除 fork，按套餐上限截断
func (c *Client) ListRepositories(ctx context.Context, login string, opts vcs.FetchOptions) ([]vcs.Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=100", c.baseURL, url.PathEscape(login))

	var payload []repoPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	var repos []vcs.Repository
	for _, r := range payload {
		if r.Fork {
			continue
		}
		repos = append(repos, vcs.Repository{
			Name:     r.Name,
			FullName: r.FullName,
			Language: r.Language,
			Fork:     r.Fork,
		})
		if opts.MaxRepositories > 0 && len(repos) >= opts.MaxRepositories {
			break
		}
	}

	return repos, nil
}

// ListCommits 拉取某仓库内该用户的提交，窗口起点与数量上限由套餐策略决定
func (c *Client) ListCommits(ctx context.Context, login, repo string, opts vcs.FetchOptions) ([]vcs.Commit, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/commits?author=%s&since=%s&per_page=100",
		c.baseURL, repo, url.QueryEscape(login), url.QueryEscape(opts.Since.Format(time.RFC3339)))

	var payload []commitPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	var commits []vcs.Commit
	for _, p := range payload {
		files := make([]string, 0, len(p.Files))
		for _, f := range p.Files {
			files = append(files, f.Filename)
			if opts.MaxFilesPerCommit > 0 && len(files) >= opts.MaxFilesPerCommit {
				break
			}
		}
		commits = append(commits, vcs.Commit{
			SHA:        p.SHA,
			Repository: repo,
			Message:    p.Commit.Message,
			AuthorDate: p.Commit.Author.Date,
			Additions:  p.Stats.Additions,
			Deletions:  p.Stats.Deletions,
			Files:      files,
		})
		if opts.MaxCommits > 0 && len(commits) >= opts.MaxCommits {
			break
		}
	}

	return commits, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github api error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}

	return nil
}

package service

import (
	"math"
	"strings"
	"time"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// OtherLayer 未匹配任何定义的文件归入的兜底层
const OtherLayer = "Other"

// 文件被触碰次数不超过该值视为稳定
const stableTouchLimit = 2

type matcherKind int

const (
	matchFragment matcherKind = iota // 路径包含片段（不区分大小写）
	matchSuffix                      // 路径后缀
)

type pathMatcher struct {
	kind  matcherKind
	value string
}

func fragment(value string) pathMatcher { return pathMatcher{kind: matchFragment, value: value} }
func suffix(value string) pathMatcher   { return pathMatcher{kind: matchSuffix, value: value} }

// layerDefinition 分层定义：名称、描述和有序的匹配器列表
type layerDefinition struct {
	name        string
	description string
	matchers    []pathMatcher
}

// layerDefinitions 按优先级排列的分层定义表。文件按定义顺序逐层测试，
// 第一个命中的定义胜出（first-match-wins），调整顺序会改变分类结果。
var layerDefinitions = []layerDefinition{
	{
		name:        "Testing",
		description: "Automated tests and test fixtures",
		matchers: []pathMatcher{
			fragment("__tests__"), fragment("/test"), fragment("test/"),
			suffix("_test.go"), suffix(".test.ts"), suffix(".test.js"),
			suffix(".spec.ts"), suffix(".spec.js"),
		},
	},
	{
		name:        "Infrastructure",
		description: "Build, deployment and CI configuration",
		matchers: []pathMatcher{
			fragment("docker"), fragment(".github/"), fragment("terraform"),
			fragment("k8s"), fragment("deploy"), fragment("ansible"),
			suffix(".yml"), suffix(".yaml"), suffix(".tf"), suffix("makefile"),
		},
	},
	{
		name:        "Business Logic",
		description: "Domain services and core application logic",
		matchers: []pathMatcher{
			fragment("service"), fragment("usecase"), fragment("domain"),
			fragment("logic"), fragment("core/"),
		},
	},
	{
		name:        "API Layer",
		description: "HTTP handlers, controllers and routing",
		matchers: []pathMatcher{
			fragment("controller"), fragment("handler"), fragment("route"),
			fragment("api/"), fragment("endpoint"), fragment("middleware"),
		},
	},
	{
		name:        "Data Access",
		description: "Repositories, models and persistence",
		matchers: []pathMatcher{
			fragment("repositor"), fragment("model"), fragment("entity"),
			fragment("schema"), fragment("migration"), fragment("dao"),
		},
	},
	{
		name:        "Frontend",
		description: "UI components, views and styling",
		matchers: []pathMatcher{
			fragment("component"), fragment("/pages/"), fragment("/views/"),
			suffix(".tsx"), suffix(".jsx"), suffix(".vue"),
			suffix(".css"), suffix(".scss"), suffix(".html"),
		},
	},
	{
		name:        "Utilities",
		description: "Helpers and shared utilities",
		matchers: []pathMatcher{
			fragment("util"), fragment("helper"), fragment("common"),
			fragment("shared"), fragment("/lib/"),
		},
	},
}

func (m pathMatcher) matches(path string) bool {
	switch m.kind {
	case matchFragment:
		return strings.Contains(path, m.value)
	case matchSuffix:
		return strings.HasSuffix(path, m.value)
	}
	return false
}

// LayerService 架构分层分类器
type LayerService struct {
	commitRepo *repository.CommitRepository
	layerRepo  *repository.LayerRepository
}

func NewLayerService(commitRepo *repository.CommitRepository, layerRepo *repository.LayerRepository) *LayerService {
	return &LayerService{
		commitRepo: commitRepo,
		layerRepo:  layerRepo,
	}
}

// ClassifyPath 对单个文件路径做分层归类，未命中任何定义返回 OtherLayer
func ClassifyPath(path string) string {
	lower := strings.ToLower(path)
	for _, def := range layerDefinitions {
		for _, m := range def.matchers {
			if m.matches(lower) {
				return def.name
			}
		}
	}
	return OtherLayer
}

func layerDescription(name string) string {
	for _, def := range layerDefinitions {
		if def.name == name {
			return def.description
		}
	}
	return "" // Other 层没有描述
}

// Recompute 根据窗口内的提交记录重算用户的架构分层并整组替换持久化结果。
// fileCount 为映射到该层的去重文件数；stabilityRate 为该层中触碰次数
// 不超过 2 次的文件占比（取整）；involvement 只要该层有文件即为 100。
func (s *LayerService) Recompute(userID int64, since time.Time) error {
	records, err := s.commitRepo.ListSince(userID, since)
	if err != nil {
		return err
	}

	// 统计每个文件的触碰次数
	touches := make(map[string]int)
	for _, record := range records {
		for _, file := range record.Files {
			touches[file]++
		}
	}

	type layerStats struct {
		files  int
		stable int
	}
	stats := make(map[string]*layerStats)
	for file, count := range touches {
		name := ClassifyPath(file)
		st, ok := stats[name]
		if !ok {
			st = &layerStats{}
			stats[name] = st
		}
		st.files++
		if count <= stableTouchLimit {
			st.stable++
		}
	}

	var layers []*model.ArchitectureLayer
	for name, st := range stats {
		rate := int(math.Round(float64(st.stable) / float64(st.files) * 100))
		layers = append(layers, &model.ArchitectureLayer{
			UserID:        userID,
			Layer:         name,
			Description:   layerDescription(name),
			FileCount:     st.files,
			StabilityRate: rate,
			Involvement:   100,
		})
	}

	return s.layerRepo.ReplaceForUser(userID, layers)
}

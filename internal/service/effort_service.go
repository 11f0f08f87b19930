package service

import (
	"regexp"
	"time"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// 投入类别
const (
	CategoryFeature        = "Feature"
	CategoryFix            = "Fix"
	CategoryRefactor       = "Refactor"
	CategoryTest           = "Test"
	CategoryDocumentation  = "Documentation"
	CategoryInfrastructure = "Infrastructure"
	CategoryPerformance    = "Performance"
	CategorySecurity       = "Security"
)

type categoryRule struct {
	category string
	keywords *regexp.Regexp
}

// categoryRules 按优先级排列的类别规则表，逐条求值，第一个命中的类别胜出。
// 任何规则都未命中时归为 Feature：宽松兜底，把含糊的提交计入最常见类别。
var categoryRules = []categoryRule{
	{CategorySecurity, regexp.MustCompile(`(?i)security|vulnerab|cve-|xss|csrf|sanitiz|injection`)},
	{CategoryPerformance, regexp.MustCompile(`(?i)performance|optimi[sz]|latency|throughput|speed up|\bperf\b`)},
	{CategoryInfrastructure, regexp.MustCompile(`(?i)docker|kubernetes|k8s|\bci\b|pipeline|deploy|infra|github action`)},
	{CategoryDocumentation, regexp.MustCompile(`(?i)\bdocs?\b|readme|documentation|changelog|typo`)},
	{CategoryTest, regexp.MustCompile(`(?i)\btests?\b|testing|\bspec\b|coverage`)},
	{CategoryRefactor, regexp.MustCompile(`(?i)refactor|clean ?up|restructur|reorganiz|simplif|rename`)},
	{CategoryFix, regexp.MustCompile(`(?i)fix|\bbug\b|patch|resolve|correct`)},
	{CategoryFeature, regexp.MustCompile(`(?i)feat|\badd\b|implement|introduce|support|create`)},
}

// ClassifyMessage 将提交信息归入唯一类别。对固定规则表而言是全函数：
// 按优先级匹配，全部未命中返回 Feature。
func ClassifyMessage(message string) string {
	for _, rule := range categoryRules {
		if rule.keywords.MatchString(message) {
			return rule.category
		}
	}
	return CategoryFeature
}

// WeekStart 计算提交所属 ISO 周的起点：周一零点 UTC
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday 以周日为 0，折算成周一偏移
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// EffortService 投入分布分类器
type EffortService struct {
	commitRepo *repository.CommitRepository
	effortRepo *repository.EffortRepository
}

func NewEffortService(commitRepo *repository.CommitRepository, effortRepo *repository.EffortRepository) *EffortService {
	return &EffortService{
		commitRepo: commitRepo,
		effortRepo: effortRepo,
	}
}

// Recompute 根据窗口内的提交记录重算用户的周投入分布并整组替换。
// 没有提交的周不产生行（稀疏输出）。
func (s *EffortService) Recompute(userID int64, since time.Time) error {
	records, err := s.commitRepo.ListSince(userID, since)
	if err != nil {
		return err
	}

	weeks := make(map[time.Time]*model.EffortDistribution)
	var order []time.Time
	for _, record := range records {
		start := WeekStart(record.AuthorDate)
		week, ok := weeks[start]
		if !ok {
			week = &model.EffortDistribution{UserID: userID, WeekStart: start}
			weeks[start] = week
			order = append(order, start)
		}
		bumpCategory(week, ClassifyMessage(record.Message))
	}

	rows := make([]*model.EffortDistribution, 0, len(order))
	for _, start := range order {
		rows = append(rows, weeks[start])
	}

	return s.effortRepo.ReplaceForUser(userID, rows)
}

func bumpCategory(week *model.EffortDistribution, category string) {
	switch category {
	case CategoryFix:
		week.Fixes++
	case CategoryRefactor:
		week.Refactors++
	case CategoryTest:
		week.Tests++
	case CategoryDocumentation:
		week.Documentation++
	case CategoryInfrastructure:
		week.Infrastructure++
	case CategoryPerformance:
		week.Performance++
	case CategorySecurity:
		week.Security++
	default:
		week.Features++
	}
}

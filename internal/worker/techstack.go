package worker

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

// techEntry 扩展名/文件名 → 技术条目的静态映射
type techEntry struct {
	name     string
	category string
}

var extensionTable = map[string]techEntry{
	".go":    {"Go", "language"},
	".ts":    {"TypeScript", "language"},
	".js":    {"JavaScript", "language"},
	".py":    {"Python", "language"},
	".rb":    {"Ruby", "language"},
	".java":  {"Java", "language"},
	".kt":    {"Kotlin", "language"},
	".rs":    {"Rust", "language"},
	".php":   {"PHP", "language"},
	".swift": {"Swift", "language"},
	".c":     {"C", "language"},
	".cpp":   {"C++", "language"},
	".cs":    {"C#", "language"},
	".tsx":   {"React", "framework"},
	".jsx":   {"React", "framework"},
	".vue":   {"Vue", "framework"},
	".tf":    {"Terraform", "tooling"},
	".sql":   {"SQL", "language"},
	".sh":    {"Shell", "tooling"},
}

var filenameTable = map[string]techEntry{
	"dockerfile":         {"Docker", "tooling"},
	"docker-compose.yml": {"Docker Compose", "tooling"},
	"go.mod":             {"Go Modules", "tooling"},
	"package.json":       {"Node.js", "tooling"},
	"cargo.toml":         {"Cargo", "tooling"},
	"pom.xml":            {"Maven", "tooling"},
	"makefile":           {"Make", "tooling"},
}

// TechStackProducer TECH_STACK_DNA/TECH_DETECTION 阶段：
// 从提交触碰的文件推断技术栈并整组替换持久化
type TechStackProducer struct {
	emitter
	commitRepo    *repository.CommitRepository
	techStackRepo *repository.TechStackRepository
	plans         *service.PlanService
}

func NewTechStackProducer(
	bus *eventbus.Bus,
	commitRepo *repository.CommitRepository,
	techStackRepo *repository.TechStackRepository,
	plans *service.PlanService,
) *TechStackProducer {
	return &TechStackProducer{
		emitter:       emitter{bus: bus},
		commitRepo:    commitRepo,
		techStackRepo: techStackRepo,
		plans:         plans,
	}
}

func (t *TechStackProducer) Stage() string        { return pipeline.StageTechStackDNA }
func (t *TechStackProducer) SubscribesTo() string { return pipeline.TopicAnalysisPersisted }

func (t *TechStackProducer) Handle(ctx context.Context, event eventbus.Event) {
	e, ok := event.(pipeline.AnalysisPersistedEvent)
	if !ok {
		return
	}

	t.progress(ctx, e.UserID, pipeline.StageTechStackDNA,
		pipeline.StageProgressValues[pipeline.StageTechStackDNA])

	policy := t.plans.PolicyFor(e.Plan)
	records, err := t.commitRepo.ListSince(e.UserID, t.plans.WindowStart(policy))
	if err != nil {
		t.failed(ctx, e.UserID, pipeline.StageTechStackDNA, fmt.Errorf("failed to load commits: %w", err))
		return
	}

	counts := make(map[techEntry]int)
	for _, record := range records {
		for _, file := range record.Files {
			if entry, ok := detectTech(file); ok {
				counts[entry]++
			}
		}
	}

	items := make([]*model.TechStackItem, 0, len(counts))
	for entry, count := range counts {
		items = append(items, &model.TechStackItem{
			UserID:     e.UserID,
			Name:       entry.name,
			Category:   entry.category,
			UsageCount: count,
		})
	}

	if err := t.techStackRepo.ReplaceForUser(e.UserID, items); err != nil {
		t.failed(ctx, e.UserID, pipeline.StageTechDetection, fmt.Errorf("failed to persist tech stack: %w", err))
		return
	}

	t.progress(ctx, e.UserID, pipeline.StageTechDetection,
		pipeline.StageProgressValues[pipeline.StageTechDetection])
}

// detectTech 根据文件路径识别技术条目：先按完整文件名，再按扩展名
func detectTech(file string) (techEntry, bool) {
	base := strings.ToLower(path.Base(file))
	if entry, ok := filenameTable[base]; ok {
		return entry, true
	}
	entry, ok := extensionTable[path.Ext(base)]
	return entry, ok
}

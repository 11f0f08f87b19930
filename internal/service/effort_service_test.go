package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/testutil"
)

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		message  string
		category string
	}{
		{"Fix login crash on Safari", CategoryFix},
		{"fixed the bug in parser", CategoryFix},
		{"hotfix: rollback config", CategoryFix},
		{"Resolve flaky reconnect", CategoryFix},

		{"feat: add dark mode", CategoryFeature},
		{"implement retry logic", CategoryFeature},
		{"add pagination support", CategoryFeature},

		{"refactor: extract validation", CategoryRefactor},
		{"clean up dead code", CategoryRefactor},
		{"rename internal packages", CategoryRefactor},

		{"add unit tests for parser", CategoryTest},
		{"improve coverage", CategoryTest},

		{"update README", CategoryDocumentation},
		{"docs: api examples", CategoryDocumentation},
		{"fix typo in comment", CategoryDocumentation},

		{"add Dockerfile for staging", CategoryInfrastructure},
		{"ci: cache modules", CategoryInfrastructure},

		{"optimize query latency", CategoryPerformance},
		{"speed up cold start", CategoryPerformance},

		{"patch XSS in comment form", CategorySecurity},
		{"sanitize user input", CategorySecurity},

		// 无任何关键词时归入 Feature
		{"wip", CategoryFeature},
		{"misc changes", CategoryFeature},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.category, ClassifyMessage(tt.message), "message %q", tt.message)
	}
}

func TestClassifyMessage_RulePriority(t *testing.T) {
	// Security 规则先于 Fix 求值
	assert.Equal(t, CategorySecurity, ClassifyMessage("fix XSS vulnerability"))
	// Documentation 的 typo 先于 Fix
	assert.Equal(t, CategoryDocumentation, ClassifyMessage("fix typo"))
	// fix 是普通子串匹配，prefix/suffix 都命中
	assert.Equal(t, CategoryFix, ClassifyMessage("prefixed identifiers"))
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		start time.Time
	}{
		{
			name:  "wednesday maps to monday",
			in:    time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC),
			start: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "monday maps to itself",
			in:    time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			start: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "sunday belongs to previous monday",
			in:    time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC),
			start: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "non-UTC input normalized to UTC",
			in:    time.Date(2026, 8, 25, 1, 0, 0, 0, time.FixedZone("CST", 8*3600)),
			start: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, WeekStart(tt.in))
		})
	}
}

func TestEffortService_Recompute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	commitRepo := repository.NewCommitRepository(db)
	effortRepo := repository.NewEffortRepository(db)
	svc := NewEffortService(commitRepo, effortRepo)

	user := testutil.TestUser(t, db)

	week1Tue := time.Date(2026, 8, 4, 10, 0, 0, 0, time.UTC)
	week1Fri := time.Date(2026, 8, 7, 18, 0, 0, 0, time.UTC)
	// 中间隔一周没有提交
	week3Mon := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)

	testutil.TestCommit(t, db, user.ID, "feat: add export", week1Tue, "a.go")
	testutil.TestCommit(t, db, user.ID, "Fix login crash on Safari", week1Fri, "b.go")
	testutil.TestCommit(t, db, user.ID, "refactor: split module", week3Mon, "c.go")

	require.NoError(t, svc.Recompute(user.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))

	weeks, err := effortRepo.ListByUser(user.ID)
	require.NoError(t, err)
	// 稀疏输出：没有提交的周不产生行
	require.Len(t, weeks, 2)

	assert.True(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC).Equal(weeks[0].WeekStart))
	assert.Equal(t, 1, weeks[0].Features)
	assert.Equal(t, 1, weeks[0].Fixes)
	assert.Equal(t, 0, weeks[0].Refactors)

	assert.True(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC).Equal(weeks[1].WeekStart))
	assert.Equal(t, 1, weeks[1].Refactors)
}

func TestEffortService_Recompute_Replaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	commitRepo := repository.NewCommitRepository(db)
	effortRepo := repository.NewEffortRepository(db)
	svc := NewEffortService(commitRepo, effortRepo)

	user := testutil.TestUser(t, db)
	date := time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC)
	testutil.TestCommit(t, db, user.ID, "feat: initial", date, "a.go")

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Recompute(user.ID, since))
	require.NoError(t, svc.Recompute(user.ID, since))

	weeks, err := effortRepo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 1, weeks[0].Features)
}

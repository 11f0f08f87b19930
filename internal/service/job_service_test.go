package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pkg/queue"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/testutil"
)

func setupJobService(t *testing.T) (*JobService, *gorm.DB, *queue.Queue, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	triggerQueue := queue.NewQueue(client, "profile_trigger_queue")
	svc := NewJobService(repository.NewJobRepository(db), repository.NewUserRepository(db), triggerQueue)

	cleanup := func() {
		client.Close()
		mr.Close()
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, triggerQueue, cleanup
}

func TestJobService_TriggerAnalysis(t *testing.T) {
	svc, db, triggerQueue, cleanup := setupJobService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithPlan("premium"))
	ctx := context.Background()

	result, err := svc.TriggerAnalysis(ctx, user.ID, "")
	require.NoError(t, err)
	assert.True(t, result.Queued)
	// 未显式指定时取用户套餐
	assert.Equal(t, "premium", result.Plan)

	msg, err := triggerQueue.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, user.ID, msg.UserID)
	assert.Equal(t, "premium", msg.Plan)
}

func TestJobService_TriggerAnalysis_ExplicitPlan(t *testing.T) {
	svc, db, triggerQueue, cleanup := setupJobService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	ctx := context.Background()

	result, err := svc.TriggerAnalysis(ctx, user.ID, "Enterprise")
	require.NoError(t, err)
	assert.Equal(t, "enterprise", result.Plan)

	msg, err := triggerQueue.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "enterprise", msg.Plan)
}

func TestJobService_TriggerAnalysis_UserNotFound(t *testing.T) {
	svc, _, _, cleanup := setupJobService(t)
	defer cleanup()

	_, err := svc.TriggerAnalysis(context.Background(), 9999, "free")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJobService_GetCurrentJob(t *testing.T) {
	svc, db, _, cleanup := setupJobService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	t.Run("no jobs at all", func(t *testing.T) {
		_, err := svc.GetCurrentJob(user.ID)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("falls back to latest finished job", func(t *testing.T) {
		done := testutil.TestJob(t, db, user.ID, model.JobStatusCompleted)

		got, err := svc.GetCurrentJob(user.ID)
		require.NoError(t, err)
		assert.Equal(t, done.ID, got.ID)
		assert.Equal(t, model.JobStatusCompleted, got.Status)
	})

	t.Run("prefers active job", func(t *testing.T) {
		running := testutil.TestJob(t, db, user.ID, model.JobStatusRunning,
			testutil.WithStage("ANALYZING_COMMITS", 45))

		got, err := svc.GetCurrentJob(user.ID)
		require.NoError(t, err)
		assert.Equal(t, running.ID, got.ID)
		assert.Equal(t, "ANALYZING_COMMITS", got.CurrentStage)
		assert.Equal(t, 45, got.Progress)
	})
}

func TestJobService_GetJobByID(t *testing.T) {
	svc, db, _, cleanup := setupJobService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	job := testutil.TestJob(t, db, user.ID, model.JobStatusFailed)
	db.Model(job).Update("error_message", "mission generation failed: rate limited")

	got, err := svc.GetJobByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, model.JobStatusFailed, got.Status)
	assert.Equal(t, "mission generation failed: rate limited", got.Error)

	_, err = svc.GetJobByID("missing-id")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

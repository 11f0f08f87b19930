package handler

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
	"github.com/qs3c/devprofile_go_server/internal/pkg/response"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
	"github.com/qs3c/devprofile_go_server/internal/testutil"
)

func setupProfileHandler(t *testing.T) (*ProfileHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	profileService := service.NewProfileService(
		repository.NewLayerRepository(db),
		repository.NewEffortRepository(db),
		repository.NewMissionRepository(db),
		repository.NewTechStackRepository(db),
	)
	handler := NewProfileHandler(profileService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func TestProfileHandler_GetLayers(t *testing.T) {
	handler, db, cleanup := setupProfileHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	layerRepo := repository.NewLayerRepository(db)
	require.NoError(t, layerRepo.ReplaceForUser(user.ID, []*model.ArchitectureLayer{
		{UserID: user.ID, Layer: "Business Logic", Description: "Domain services and core application logic",
			FileCount: 12, StabilityRate: 75, Involvement: 100},
		{UserID: user.ID, Layer: "Testing", Description: "Automated tests and test fixtures",
			FileCount: 4, StabilityRate: 100, Involvement: 100},
	}))

	router := gin.New()
	router.GET("/profile/:user_id/layers", handler.GetLayers)

	w := performRequest(router, "GET", fmt.Sprintf("/profile/%d/layers", user.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.([]interface{})
	require.Len(t, data, 2)

	// 按文件数降序
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Business Logic", first["layer"])
	assert.Equal(t, float64(12), first["file_count"])
	assert.Equal(t, float64(75), first["stability_rate"])
}

func TestProfileHandler_GetEffort(t *testing.T) {
	handler, db, cleanup := setupProfileHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	week := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	effortRepo := repository.NewEffortRepository(db)
	require.NoError(t, effortRepo.ReplaceForUser(user.ID, []*model.EffortDistribution{
		{UserID: user.ID, WeekStart: week, Features: 3, Fixes: 2, Tests: 1},
	}))

	router := gin.New()
	router.GET("/profile/:user_id/effort", handler.GetEffort)

	w := performRequest(router, "GET", fmt.Sprintf("/profile/%d/effort", user.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.([]interface{})
	require.Len(t, data, 1)

	entry := data[0].(map[string]interface{})
	categories := entry["categories"].(map[string]interface{})
	assert.Equal(t, float64(3), categories["features"])
	assert.Equal(t, float64(2), categories["fixes"])
	assert.Equal(t, float64(1), categories["tests"])
	assert.Equal(t, float64(0), categories["security"])
}

func TestProfileHandler_GetMissions(t *testing.T) {
	handler, db, cleanup := setupProfileHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	missionRepo := repository.NewMissionRepository(db)
	require.NoError(t, missionRepo.ReplaceForUser(user.ID, []*model.Mission{
		{UserID: user.ID, Title: "Write integration tests", Description: "Cover the export path", Category: "testing"},
	}))

	router := gin.New()
	router.GET("/profile/:user_id/missions", handler.GetMissions)

	w := performRequest(router, "GET", fmt.Sprintf("/profile/%d/missions", user.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.([]interface{})
	require.Len(t, data, 1)
	mission := data[0].(map[string]interface{})
	assert.Equal(t, "Write integration tests", mission["title"])
	assert.Equal(t, "testing", mission["category"])
}

func TestProfileHandler_GetTechStack(t *testing.T) {
	handler, db, cleanup := setupProfileHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	techStackRepo := repository.NewTechStackRepository(db)
	require.NoError(t, techStackRepo.ReplaceForUser(user.ID, []*model.TechStackItem{
		{UserID: user.ID, Name: "Go", Category: "language", UsageCount: 42},
		{UserID: user.ID, Name: "Docker", Category: "tooling", UsageCount: 3},
	}))

	router := gin.New()
	router.GET("/profile/:user_id/techstack", handler.GetTechStack)

	w := performRequest(router, "GET", fmt.Sprintf("/profile/%d/techstack", user.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data := resp.Data.([]interface{})
	require.Len(t, data, 2)

	// 按使用次数降序
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Go", first["name"])
	assert.Equal(t, float64(42), first["usage_count"])
}

func TestProfileHandler_InvalidUserID(t *testing.T) {
	handler, _, cleanup := setupProfileHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/profile/:user_id/layers", handler.GetLayers)

	w := performRequest(router, "GET", "/profile/notanumber/layers", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestProfileHandler_EmptyProfile(t *testing.T) {
	handler, db, cleanup := setupProfileHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := gin.New()
	router.GET("/profile/:user_id/layers", handler.GetLayers)

	w := performRequest(router, "GET", fmt.Sprintf("/profile/%d/layers", user.ID), nil)
	resp := parseResponse(t, w)

	// 尚未分析过的用户返回空列表而不是错误
	assert.Equal(t, response.CodeSuccess, resp.Code)
	data := resp.Data.([]interface{})
	assert.Empty(t, data)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/devprofile_go_server/internal/pkg/response"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return 0, false
	}
	return userID, true
}

// GetLayers 获取架构分层
// GET /api/v1/profile/:user_id/layers
func (h *ProfileHandler) GetLayers(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	layers, err := h.profileService.GetLayers(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, layers)
}

// GetEffort 获取投入分布
// GET /api/v1/profile/:user_id/effort
func (h *ProfileHandler) GetEffort(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	weeks, err := h.profileService.GetEffort(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, weeks)
}

// GetMissions 获取成长任务
// GET /api/v1/profile/:user_id/missions
func (h *ProfileHandler) GetMissions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	missions, err := h.profileService.GetMissions(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, missions)
}

// GetTechStack 获取技术栈
// GET /api/v1/profile/:user_id/techstack
func (h *ProfileHandler) GetTechStack(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	items, err := h.profileService.GetTechStack(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

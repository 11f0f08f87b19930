package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/devprofile_go_server/internal/model/dto"
	"github.com/qs3c/devprofile_go_server/internal/pkg/response"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Trigger 触发分析
// POST /api/v1/profile/:user_id/analyze
func (h *JobHandler) Trigger(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	var req dto.TriggerAnalysisRequest
	// 请求体可为空，plan 缺省取用户套餐
	_ = c.ShouldBindJSON(&req)

	result, err := h.jobService.TriggerAnalysis(c.Request.Context(), userID, req.Plan)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, result)
}

// GetCurrent 获取用户当前或最近一次任务
// GET /api/v1/profile/:user_id/job
func (h *JobHandler) GetCurrent(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	job, err := h.jobService.GetCurrentJob(userID)
	if err != nil {
		switch err {
		case service.ErrJobNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, job)
}

// GetByID 按任务 ID 查询
// GET /api/v1/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		response.ParamError(c, "无效的任务ID")
		return
	}

	job, err := h.jobService.GetJobByID(jobID)
	if err != nil {
		switch err {
		case service.ErrJobNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, job)
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/devprofile_go_server/config"
	"github.com/qs3c/devprofile_go_server/internal/api/handler"
	"github.com/qs3c/devprofile_go_server/internal/api/middleware"
)

type Router struct {
	jobHandler       *handler.JobHandler
	profileHandler   *handler.ProfileHandler
	websocketHandler *handler.WebSocketHandler
	cfg              *config.Config
}

func NewRouter(
	jobHandler *handler.JobHandler,
	profileHandler *handler.ProfileHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		jobHandler:       jobHandler,
		profileHandler:   profileHandler,
		websocketHandler: websocketHandler,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket 进度推送
		api.GET("/ws", r.websocketHandler.Handle)

		// 任务
		api.GET("/jobs/:id", r.jobHandler.GetByID)

		// 用户画像
		profile := api.Group("/profile/:user_id")
		{
			profile.POST("/analyze", r.jobHandler.Trigger)
			profile.GET("/job", r.jobHandler.GetCurrent)
			profile.GET("/layers", r.profileHandler.GetLayers)
			profile.GET("/effort", r.profileHandler.GetEffort)
			profile.GET("/missions", r.profileHandler.GetMissions)
			profile.GET("/techstack", r.profileHandler.GetTechStack)
		}
	}

	return engine
}

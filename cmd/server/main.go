package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/devprofile_go_server/config"
	"github.com/qs3c/devprofile_go_server/internal/api"
	"github.com/qs3c/devprofile_go_server/internal/api/handler"
	"github.com/qs3c/devprofile_go_server/internal/database"
	"github.com/qs3c/devprofile_go_server/internal/pkg/cron"
	"github.com/qs3c/devprofile_go_server/internal/pkg/pubsub"
	"github.com/qs3c/devprofile_go_server/internal/pkg/queue"
	"github.com/qs3c/devprofile_go_server/internal/pkg/ws"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化触发队列
	triggerQueue := queue.NewQueue(rdb, cfg.Queue.TriggerQueue)

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// 订阅进度中继，推送给对应用户的连接
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ProgressMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{Type: msg.Type, Data: msg})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Progress subscriber stopped: %v", err)
		}
	}()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	layerRepo := repository.NewLayerRepository(db)
	effortRepo := repository.NewEffortRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	techStackRepo := repository.NewTechStackRepository(db)

	// 初始化 Service
	jobService := service.NewJobService(jobRepo, userRepo, triggerQueue)
	profileService := service.NewProfileService(layerRepo, effortRepo, missionRepo, techStackRepo)

	// 初始化 Handler
	jobHandler := handler.NewJobHandler(jobService)
	profileHandler := handler.NewProfileHandler(profileService)
	websocketHandler := handler.NewWebSocketHandler(wsHub)

	// 启动后台定时任务
	cronService := cron.NewService(jobRepo, cfg.Cleanup.StaleJobHours, cfg.Cleanup.JobRetentionDays)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(jobHandler, profileHandler, websocketHandler, cfg)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

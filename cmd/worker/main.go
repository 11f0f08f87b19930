package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/devprofile_go_server/config"
	"github.com/qs3c/devprofile_go_server/internal/database"
	"github.com/qs3c/devprofile_go_server/internal/pipeline"
	"github.com/qs3c/devprofile_go_server/internal/pkg/eventbus"
	"github.com/qs3c/devprofile_go_server/internal/pkg/github"
	"github.com/qs3c/devprofile_go_server/internal/pkg/llm"
	"github.com/qs3c/devprofile_go_server/internal/pkg/pubsub"
	"github.com/qs3c/devprofile_go_server/internal/pkg/queue"
	"github.com/qs3c/devprofile_go_server/internal/repository"
	"github.com/qs3c/devprofile_go_server/internal/service"
	"github.com/qs3c/devprofile_go_server/internal/worker"
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

	// 初始化触发队列和进度中继
	triggerQueue := queue.NewQueue(rdb, cfg.Queue.TriggerQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	commitRepo := repository.NewCommitRepository(db)
	layerRepo := repository.NewLayerRepository(db)
	effortRepo := repository.NewEffortRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	techStackRepo := repository.NewTechStackRepository(db)

	// 初始化 Service
	planService := service.NewPlanService(cfg)
	layerService := service.NewLayerService(commitRepo, layerRepo)
	effortService := service.NewEffortService(commitRepo, effortRepo)

	// 外部协作方
	commitSource := github.NewClient(cfg.GitHub.Token, cfg.GitHub.BaseURL)
	llmClient := llm.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens)

	// 组装管线：追踪器 + 各阶段生产者按拓扑接入总线
	bus := eventbus.New()
	tracker := pipeline.NewProgressTracker(jobRepo, pipeline.NewJobIndex(), publisher)

	err = pipeline.Wire(bus, tracker,
		worker.NewCommitFetcher(bus, commitSource, userRepo, planService),
		worker.NewCommitAnalyzer(bus),
		worker.NewAnalysisPersister(bus, commitRepo),
		worker.NewMissionProducer(bus, llmClient, commitRepo, missionRepo, planService),
		worker.NewTechStackProducer(bus, commitRepo, techStackRepo, planService),
		worker.NewLayerProducer(bus, layerService, planService),
		worker.NewEffortProducer(bus, effortService, planService),
	)
	if err != nil {
		log.Fatalf("Failed to wire pipeline: %v", err)
	}

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max intake loops: %d", cfg.Queue.MaxWorkers)

	// 启动触发消息出队循环，转发到进程内总线
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Intake loop %d shutting down", workerID)
					return
				default:
					msg, err := triggerQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Intake loop %d: failed to pop trigger: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					log.Printf("Intake loop %d: triggering analysis for user %d (plan=%s)",
						workerID, msg.UserID, msg.Plan)
					bus.Publish(ctx, pipeline.TriggerEvent{UserID: msg.UserID, Plan: msg.Plan})
				}
			}
		}(i)
	}

	// 等待 context 取消，再等在途处理器完成
	<-ctx.Done()
	bus.Wait()
	log.Println("Worker shutdown complete")
}

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/qs3c/devprofile_go_server/config"
	"github.com/qs3c/devprofile_go_server/internal/database"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

var (
	staleHours    = flag.Int("stale-hours", 2, "Hours after which a RUNNING job is considered stuck")
	retentionDays = flag.Int("retention-days", 90, "Days to keep finished jobs")
	sweepStale    = flag.Bool("sweep-stale", true, "Mark stuck RUNNING jobs as failed")
	sweepOld      = flag.Bool("sweep-old", false, "Delete finished jobs older than retention")
)

// 一次性清理工具：兜底处理进程重启后失去索引条目、永远收不到
// 阶段事件的在途任务，以及超过保留期的历史任务。
func main() {
	flag.Parse()

	log.Println("Starting cleanup task...")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	jobRepo := repository.NewJobRepository(db)

	if *sweepStale {
		cutoff := time.Now().Add(-time.Duration(*staleHours) * time.Hour)
		count, err := jobRepo.FailStaleRunning(cutoff, "job timed out")
		if err != nil {
			log.Fatalf("Failed to sweep stale jobs: %v", err)
		}
		log.Printf("Marked %d stale jobs as failed", count)
	}

	if *sweepOld {
		cutoff := time.Now().AddDate(0, 0, -*retentionDays)
		count, err := jobRepo.DeleteOlderThan(cutoff)
		if err != nil {
			log.Fatalf("Failed to sweep old jobs: %v", err)
		}
		log.Printf("Deleted %d old jobs", count)
	}

	log.Println("Cleanup complete")
}

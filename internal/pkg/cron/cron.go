package cron

import (
	"log"
	"time"

	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// Service 后台定时任务：超时任务兜底标记 + 历史任务清理。
// 进程重启后 Job Index 不保留，重启前在途的 RUNNING 任务不会再收到阶段事件，
// 由超时兜底将其标记为失败。
type Service struct {
	jobRepo          *repository.JobRepository
	staleJobHours    int
	jobRetentionDays int
	stopChan         chan struct{}
}

func NewService(jobRepo *repository.JobRepository, staleJobHours, jobRetentionDays int) *Service {
	return &Service{
		jobRepo:          jobRepo,
		staleJobHours:    staleJobHours,
		jobRetentionDays: jobRetentionDays,
		stopChan:         make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runStaleJobSweep()
	go s.runRetentionSweep()
	log.Println("Cron service started (stale job sweep + retention sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runStaleJobSweep 周期性将超时的 RUNNING 任务标记为失败
func (s *Service) runStaleJobSweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepStaleJobs()
		}
	}
}

// runRetentionSweep 每日清理超过保留期的历史任务
func (s *Service) runRetentionSweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweepOldJobs()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) sweepStaleJobs() {
	cutoff := time.Now().Add(-time.Duration(s.staleJobHours) * time.Hour)
	count, err := s.jobRepo.FailStaleRunning(cutoff, "job timed out")
	if err != nil {
		log.Printf("Stale job sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Stale job sweep: marked %d jobs failed", count)
	}
}

func (s *Service) sweepOldJobs() {
	cutoff := time.Now().AddDate(0, 0, -s.jobRetentionDays)
	count, err := s.jobRepo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Retention sweep failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Retention sweep: deleted %d old jobs", count)
	}
}

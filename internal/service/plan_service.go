package service

import (
	"strings"
	"time"

	"github.com/qs3c/devprofile_go_server/config"
)

// PlanService 套餐策略查询：套餐名 → 回溯窗口与量级上限
type PlanService struct {
	cfg *config.Config
}

func NewPlanService(cfg *config.Config) *PlanService {
	return &PlanService{cfg: cfg}
}

// PolicyFor 查询套餐策略，未识别的套餐一律回落到 free
func (s *PlanService) PolicyFor(plan string) config.PlanPolicy {
	policy, ok := s.cfg.Plans[strings.ToLower(plan)]
	if !ok {
		return s.cfg.Plans["free"]
	}
	return policy
}

// WindowStart 根据策略计算回溯窗口起点
func (s *PlanService) WindowStart(policy config.PlanPolicy) time.Time {
	return time.Now().UTC().AddDate(0, 0, -policy.WindowDays)
}

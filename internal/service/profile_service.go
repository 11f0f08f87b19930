package service

import (
	"github.com/qs3c/devprofile_go_server/internal/model/dto"
	"github.com/qs3c/devprofile_go_server/internal/repository"
)

// ProfileService 聚合结果的读路径
type ProfileService struct {
	layerRepo     *repository.LayerRepository
	effortRepo    *repository.EffortRepository
	missionRepo   *repository.MissionRepository
	techStackRepo *repository.TechStackRepository
}

func NewProfileService(
	layerRepo *repository.LayerRepository,
	effortRepo *repository.EffortRepository,
	missionRepo *repository.MissionRepository,
	techStackRepo *repository.TechStackRepository,
) *ProfileService {
	return &ProfileService{
		layerRepo:     layerRepo,
		effortRepo:    effortRepo,
		missionRepo:   missionRepo,
		techStackRepo: techStackRepo,
	}
}

// GetLayers 按文件数降序返回架构分层
func (s *ProfileService) GetLayers(userID int64) ([]*dto.LayerResponse, error) {
	layers, err := s.layerRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LayerResponse, 0, len(layers))
	for _, layer := range layers {
		result = append(result, &dto.LayerResponse{
			Layer:         layer.Layer,
			Description:   layer.Description,
			FileCount:     layer.FileCount,
			StabilityRate: layer.StabilityRate,
			Involvement:   layer.Involvement,
		})
	}
	return result, nil
}

// GetEffort 按周起始升序返回投入分布
func (s *ProfileService) GetEffort(userID int64) ([]*dto.EffortWeekResponse, error) {
	weeks, err := s.effortRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.EffortWeekResponse, 0, len(weeks))
	for _, week := range weeks {
		result = append(result, &dto.EffortWeekResponse{
			WeekStart: week.WeekStart,
			Categories: map[string]int{
				"features":       week.Features,
				"fixes":          week.Fixes,
				"refactors":      week.Refactors,
				"tests":          week.Tests,
				"documentation":  week.Documentation,
				"infrastructure": week.Infrastructure,
				"performance":    week.Performance,
				"security":       week.Security,
			},
		})
	}
	return result, nil
}

// GetMissions 返回成长任务
func (s *ProfileService) GetMissions(userID int64) ([]*dto.MissionResponse, error) {
	missions, err := s.missionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MissionResponse, 0, len(missions))
	for _, m := range missions {
		result = append(result, &dto.MissionResponse{
			Title:       m.Title,
			Description: m.Description,
			Category:    m.Category,
		})
	}
	return result, nil
}

// GetTechStack 按使用次数降序返回技术栈
func (s *ProfileService) GetTechStack(userID int64) ([]*dto.TechStackResponse, error) {
	items, err := s.techStackRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TechStackResponse, 0, len(items))
	for _, item := range items {
		result = append(result, &dto.TechStackResponse{
			Name:       item.Name,
			Category:   item.Category,
			UsageCount: item.UsageCount,
		})
	}
	return result, nil
}

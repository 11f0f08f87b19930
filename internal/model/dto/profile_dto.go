package dto

import (
	"time"
)

// LayerResponse 架构分层投影
type LayerResponse struct {
	Layer         string `json:"layer"`
	Description   string `json:"description"`
	FileCount     int    `json:"file_count"`
	StabilityRate int    `json:"stability_rate"`
	Involvement   int    `json:"involvement"`
}

// EffortWeekResponse 单周投入分布投影
type EffortWeekResponse struct {
	WeekStart  time.Time      `json:"week_start"`
	Categories map[string]int `json:"categories"`
}

// MissionResponse 成长任务投影
type MissionResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TechStackResponse 技术栈投影
type TechStackResponse struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	UsageCount int    `json:"usage_count"`
}

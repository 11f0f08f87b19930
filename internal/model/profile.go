package model

import (
	"time"
)

// ArchitectureLayer 架构分层聚合，每个用户每层一行，整组替换式写入
type ArchitectureLayer struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Layer         string    `gorm:"size:50;not null" json:"layer"`
	Description   string    `gorm:"size:500" json:"description"`
	FileCount     int       `gorm:"not null" json:"file_count"`
	StabilityRate int       `gorm:"not null" json:"stability_rate"` // 0-100
	Involvement   int       `gorm:"not null" json:"involvement"`    // 0 或 100
	CreatedAt     time.Time `json:"created_at"`
}

func (ArchitectureLayer) TableName() string {
	return "architecture_layers"
}

// EffortDistribution 按 ISO 周聚合的投入分布，每个用户每周一行
type EffortDistribution struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;index:idx_effort_user_week" json:"user_id"`
	WeekStart      time.Time `gorm:"not null;index:idx_effort_user_week" json:"week_start"` // 周一零点 UTC
	Features       int       `gorm:"default:0" json:"features"`
	Fixes          int       `gorm:"default:0" json:"fixes"`
	Refactors      int       `gorm:"default:0" json:"refactors"`
	Tests          int       `gorm:"default:0" json:"tests"`
	Documentation  int       `gorm:"default:0" json:"documentation"`
	Infrastructure int       `gorm:"default:0" json:"infrastructure"`
	Performance    int       `gorm:"default:0" json:"performance"`
	Security       int       `gorm:"default:0" json:"security"`
	CreatedAt      time.Time `json:"created_at"`
}

func (EffortDistribution) TableName() string {
	return "effort_distributions"
}

// Mission AI 生成的成长任务
type Mission struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Mission) TableName() string {
	return "missions"
}

// TechStackItem 技术栈检测结果
type TechStackItem struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Category   string    `gorm:"size:50" json:"category"` // language, framework, tooling
	UsageCount int       `gorm:"not null" json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (TechStackItem) TableName() string {
	return "tech_stack_items"
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 用于 JSON 数组字段
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// CommitRecord 持久化的已分析提交，供下游分类阶段按窗口读取
type CommitRecord struct {
	ID         int64       `gorm:"primaryKey" json:"id"`
	UserID     int64       `gorm:"not null;index:idx_commit_user_date" json:"user_id"`
	SHA        string      `gorm:"size:64;not null" json:"sha"`
	Repository string      `gorm:"size:200" json:"repository"`
	Message    string      `gorm:"type:text" json:"message"`
	AuthorDate time.Time   `gorm:"not null;index:idx_commit_user_date" json:"author_date"`
	Additions  int         `json:"additions"`
	Deletions  int         `json:"deletions"`
	Files      StringArray `gorm:"type:json" json:"files,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (CommitRecord) TableName() string {
	return "commit_records"
}

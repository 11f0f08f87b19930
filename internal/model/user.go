package model

import (
	"time"
)

type User struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	GithubLogin string    `gorm:"size:100" json:"github_login"`
	Plan        string    `gorm:"size:20;default:free" json:"plan"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

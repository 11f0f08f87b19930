package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type TechStackRepository struct {
	db *gorm.DB
}

func NewTechStackRepository(db *gorm.DB) *TechStackRepository {
	return &TechStackRepository{db: db}
}

// ReplaceForUser 整组替换用户的技术栈条目，单事务提交
func (r *TechStackRepository) ReplaceForUser(userID int64, items []*model.TechStackItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.TechStackItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// ListByUser 按使用次数降序返回用户的技术栈
func (r *TechStackRepository) ListByUser(userID int64) ([]*model.TechStackItem, error) {
	var items []*model.TechStackItem
	err := r.db.Where("user_id = ?", userID).
		Order("usage_count DESC").
		Find(&items).Error
	return items, err
}

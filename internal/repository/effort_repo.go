package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type EffortRepository struct {
	db *gorm.DB
}

func NewEffortRepository(db *gorm.DB) *EffortRepository {
	return &EffortRepository{db: db}
}

// ReplaceForUser 整组替换用户的周投入分布，单事务提交
func (r *EffortRepository) ReplaceForUser(userID int64, weeks []*model.EffortDistribution) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.EffortDistribution{}).Error; err != nil {
			return err
		}
		if len(weeks) == 0 {
			return nil
		}
		return tx.Create(&weeks).Error
	})
}

// ListByUser 按周起始升序返回用户的投入分布
func (r *EffortRepository) ListByUser(userID int64) ([]*model.EffortDistribution, error) {
	var weeks []*model.EffortDistribution
	err := r.db.Where("user_id = ?", userID).
		Order("week_start ASC").
		Find(&weeks).Error
	return weeks, err
}

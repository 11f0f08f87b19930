package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type MissionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// ReplaceForUser 整组替换用户的成长任务，单事务提交
func (r *MissionRepository) ReplaceForUser(userID int64, missions []*model.Mission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Mission{}).Error; err != nil {
			return err
		}
		if len(missions) == 0 {
			return nil
		}
		return tx.Create(&missions).Error
	})
}

func (r *MissionRepository) ListByUser(userID int64) ([]*model.Mission, error) {
	var missions []*model.Mission
	err := r.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&missions).Error
	return missions, err
}

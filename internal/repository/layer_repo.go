package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type LayerRepository struct {
	db *gorm.DB
}

func NewLayerRepository(db *gorm.DB) *LayerRepository {
	return &LayerRepository{db: db}
}

// ReplaceForUser 删除旧分层并写入新分层，作为一个事务提交，
// 避免读者在删除和插入之间看到空集
func (r *LayerRepository) ReplaceForUser(userID int64, layers []*model.ArchitectureLayer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ArchitectureLayer{}).Error; err != nil {
			return err
		}
		if len(layers) == 0 {
			return nil
		}
		return tx.Create(&layers).Error
	})
}

// ListByUser 按文件数降序返回用户的架构分层
func (r *LayerRepository) ListByUser(userID int64) ([]*model.ArchitectureLayer, error) {
	var layers []*model.ArchitectureLayer
	err := r.db.Where("user_id = ?", userID).
		Order("file_count DESC").
		Find(&layers).Error
	return layers, err
}

package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/devprofile_go_server/internal/model"
)

type CommitRepository struct {
	db *gorm.DB
}

func NewCommitRepository(db *gorm.DB) *CommitRepository {
	return &CommitRepository{db: db}
}

// ReplaceForUser 以单个事务整组替换用户的提交记录
func (r *CommitRepository) ReplaceForUser(userID int64, records []*model.CommitRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.CommitRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// ListSince 按窗口读取用户提交记录：author_date >= since
func (r *CommitRepository) ListSince(userID int64, since time.Time) ([]*model.CommitRecord, error) {
	var records []*model.CommitRecord
	err := r.db.Where("user_id = ? AND author_date >= ?", userID, since).
		Order("author_date ASC").
		Find(&records).Error
	return records, err
}

func (r *CommitRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.CommitRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Record(log *model.ActivityLog) error {
	return r.DB.Create(log).Error
}

func (r *ActivityRepository) Recent(limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

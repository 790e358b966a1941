package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/blogsvc/domain"
)

// SettingRepositoryImpl implements domain.SettingRepository using GORM.
type SettingRepositoryImpl struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository.
func NewSettingRepository(db *gorm.DB) domain.SettingRepository {
	return &SettingRepositoryImpl{db: db}
}

// Get implements domain.SettingRepository.
func (r *SettingRepositoryImpl) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting DBSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return &domain.Setting{ID: setting.ID, Key: setting.Key, Value: setting.Value}, nil
}

// Upsert implements domain.SettingRepository.
func (r *SettingRepositoryImpl) Upsert(ctx context.Context, key, value string) error {
	setting := DBSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

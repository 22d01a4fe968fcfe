package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (*settings.Setting, error) {
	var s settings.Setting
	if err := r.db.WithContext(ctx).First(&s, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settings.ErrSettingNotFound
		}
		return nil, fmt.Errorf("fetching setting %q: %w", key, err)
	}
	return &s, nil
}

func (r *SettingsRepo) List(ctx context.Context) ([]*settings.Setting, error) {
	var out []*settings.Setting
	if err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	return out, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, key, value, description string) (*settings.Setting, error) {
	s := &settings.Setting{Key: key, Value: value, Description: description}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).
		Create(s).Error
	if err != nil {
		return nil, fmt.Errorf("upserting setting %q: %w", key, err)
	}
	return s, nil
}

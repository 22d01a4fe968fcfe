package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"github.com/clinicflow/clinicflow/internal/domain/settings"
	"go.uber.org/zap"
)

// SettingsService owns system-wide scheduling configuration, most
// importantly the block duration used to partition availability windows.
type SettingsService struct {
	store settings.Store
	log   *zap.Logger
}

func NewSettingsService(store settings.Store, log *zap.Logger) *SettingsService {
	return &SettingsService{store: store, log: log}
}

// BlockDuration returns the configured block duration in minutes, falling
// back to the default when the setting has never been written.
func (s *SettingsService) BlockDuration(ctx context.Context) (int, error) {
	setting, err := s.store.Get(ctx, settings.KeyBlockDuration)
	if err != nil {
		if errors.Is(err, settings.ErrSettingNotFound) {
			return settings.DefaultBlockDurationMins, nil
		}
		return 0, fmt.Errorf("reading block duration: %w", err)
	}

	mins, err := strconv.Atoi(setting.Value)
	if err != nil || mins <= 0 {
		// A corrupt row should not wedge scheduling entirely.
		s.log.Warn("invalid block duration setting, using default",
			zap.String("value", setting.Value))
		return settings.DefaultBlockDurationMins, nil
	}
	return mins, nil
}

// SetBlockDuration persists a new block duration. Existing blocks keep the
// duration they were generated with.
func (s *SettingsService) SetBlockDuration(ctx context.Context, minutes int) (*settings.Setting, error) {
	if minutes <= 0 {
		return nil, schedule.ErrInvalidBlockDuration
	}
	setting, err := s.store.Upsert(ctx, settings.KeyBlockDuration, strconv.Itoa(minutes),
		"Length in minutes of bookable appointment blocks")
	if err != nil {
		return nil, fmt.Errorf("updating block duration: %w", err)
	}
	return setting, nil
}

func (s *SettingsService) Get(ctx context.Context, key string) (*settings.Setting, error) {
	return s.store.Get(ctx, key)
}

func (s *SettingsService) List(ctx context.Context) ([]*settings.Setting, error) {
	return s.store.List(ctx)
}

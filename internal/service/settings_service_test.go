package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicflow/clinicflow/internal/domain/schedule"
	"go.uber.org/zap"
)

func TestBlockDurationDefaultsTo60(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsStore(), zap.NewNop())

	mins, err := svc.BlockDuration(context.Background())
	if err != nil {
		t.Fatalf("BlockDuration: %v", err)
	}
	if mins != 60 {
		t.Fatalf("default block duration = %d, want 60", mins)
	}
}

func TestSetBlockDurationRoundTrips(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsStore(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.SetBlockDuration(ctx, 30); err != nil {
		t.Fatalf("SetBlockDuration: %v", err)
	}

	mins, err := svc.BlockDuration(ctx)
	if err != nil {
		t.Fatalf("BlockDuration: %v", err)
	}
	if mins != 30 {
		t.Fatalf("block duration = %d, want 30", mins)
	}
}

func TestSetBlockDurationRejectsNonPositive(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsStore(), zap.NewNop())
	ctx := context.Background()

	for _, mins := range []int{0, -1, -60} {
		if _, err := svc.SetBlockDuration(ctx, mins); !errors.Is(err, schedule.ErrInvalidBlockDuration) {
			t.Errorf("SetBlockDuration(%d) = %v, want ErrInvalidBlockDuration", mins, err)
		}
	}
}

func TestBlockDurationFallsBackOnCorruptValue(t *testing.T) {
	store := newFakeSettingsStore()
	if _, err := store.Upsert(context.Background(), "appointment_block_duration_minutes", "not-a-number", ""); err != nil {
		t.Fatal(err)
	}
	svc := NewSettingsService(store, zap.NewNop())

	mins, err := svc.BlockDuration(context.Background())
	if err != nil {
		t.Fatalf("BlockDuration: %v", err)
	}
	if mins != 60 {
		t.Fatalf("block duration = %d, want fallback 60", mins)
	}
}

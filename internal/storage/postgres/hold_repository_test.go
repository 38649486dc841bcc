package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cimillas/room-reserve/internal/domain"
	"github.com/cimillas/room-reserve/internal/storage/postgres"
	"github.com/cimillas/room-reserve/internal/testutil"
)

func TestHoldRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)

	repo := postgres.NewHoldRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("GetSlotForUpdate returns the slot", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))

		slot, err := repo.GetSlotForUpdate(ctx, slotID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slot.ID != slotID {
			t.Fatalf("expected slot %d, got %d", slotID, slot.ID)
		}
	})

	t.Run("GetSlotForUpdate on missing slot", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.GetSlotForUpdate(ctx, 12345)
		if !errors.Is(err, domain.ErrSlotNotFound) {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("CreateHold on a held slot returns ErrSlotOnHold", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		testutil.InsertHold(t, ctx, pool, slotID, "tok-1", now.Add(5*time.Minute), nil)

		_, err := repo.CreateHold(ctx, domain.Hold{
			SlotID:    slotID,
			Token:     "tok-2",
			CreatedAt: now,
			ExpiresAt: now.Add(5 * time.Minute),
		})
		if !errors.Is(err, domain.ErrSlotOnHold) {
			t.Fatalf("expected ErrSlotOnHold, got %v", err)
		}
	})

	t.Run("ReleaseLapsedHoldsForSlot frees the unique index", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		lapsedID := testutil.InsertHold(t, ctx, pool, slotID, "tok-old", now.Add(-time.Minute), nil)

		if err := repo.ReleaseLapsedHoldsForSlot(ctx, slotID, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		id, err := repo.CreateHold(ctx, domain.Hold{
			SlotID:    slotID,
			Token:     "tok-new",
			CreatedAt: now,
			ExpiresAt: now.Add(5 * time.Minute),
		})
		if err != nil {
			t.Fatalf("expected new hold after reap, got %v", err)
		}
		if id == lapsedID {
			t.Fatal("expected a new hold id")
		}
	})

	t.Run("GetActiveHoldBySlot ignores released and expired holds", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		released := now.Add(-time.Hour)
		testutil.InsertHold(t, ctx, pool, slotID, "tok-released", now.Add(5*time.Minute), &released)

		hold, err := repo.GetActiveHoldBySlot(ctx, slotID, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hold != nil {
			t.Fatalf("expected no active hold, got %+v", hold)
		}

		activeID := testutil.InsertHold(t, ctx, pool, slotID, "tok-active", now.Add(5*time.Minute), nil)
		hold, err = repo.GetActiveHoldBySlot(ctx, slotID, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hold == nil || hold.ID != activeID {
			t.Fatalf("expected hold %d, got %+v", activeID, hold)
		}
	})

	t.Run("GetHoldByIDAndToken requires a matching token", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		holdID := testutil.InsertHold(t, ctx, pool, slotID, "tok-1", now.Add(5*time.Minute), nil)

		hold, err := repo.GetHoldByIDAndToken(ctx, holdID, "tok-wrong")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hold != nil {
			t.Fatalf("expected nil for wrong token, got %+v", hold)
		}

		hold, err = repo.GetHoldByIDAndToken(ctx, holdID, "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hold == nil || hold.SlotID != slotID {
			t.Fatalf("expected hold for slot %d, got %+v", slotID, hold)
		}
	})

	t.Run("MarkHoldReleased is idempotent", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotID := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		holdID := testutil.InsertHold(t, ctx, pool, slotID, "tok-1", now.Add(5*time.Minute), nil)

		first := now.Add(time.Minute)
		if err := repo.MarkHoldReleased(ctx, holdID, first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.MarkHoldReleased(ctx, holdID, now.Add(2*time.Minute)); err != nil {
			t.Fatalf("unexpected error on second release: %v", err)
		}

		var releasedAt time.Time
		if err := pool.QueryRow(ctx, `SELECT released_at FROM holds WHERE id = $1`, holdID).Scan(&releasedAt); err != nil {
			t.Fatalf("query hold: %v", err)
		}
		if !releasedAt.Equal(first) {
			t.Fatalf("expected released_at to keep first value %v, got %v", first, releasedAt)
		}
	})

	t.Run("ReleaseExpired counts only lapsed active holds", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		_, slotA := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 1", now.Add(time.Hour), now.Add(2*time.Hour))
		_, slotB := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 2", now.Add(time.Hour), now.Add(2*time.Hour))
		_, slotC := testutil.InsertRoomAndSlot(t, ctx, pool, "Sala 3", now.Add(time.Hour), now.Add(2*time.Hour))

		testutil.InsertHold(t, ctx, pool, slotA, "tok-lapsed", now.Add(-time.Minute), nil)
		testutil.InsertHold(t, ctx, pool, slotB, "tok-live", now.Add(5*time.Minute), nil)
		released := now.Add(-time.Hour)
		testutil.InsertHold(t, ctx, pool, slotC, "tok-done", now.Add(-time.Minute), &released)

		count, err := repo.ReleaseExpired(ctx, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 released hold, got %d", count)
		}
	})
}

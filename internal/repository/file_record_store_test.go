package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"FarmPulse/internal/domain/models"
	applogger "FarmPulse/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestFileRecordStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewFileRecordStore(filepath.Join(t.TempDir(), "records.json"), testLogger(t))
	records := store.Load(context.Background())
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", records)
	}
}

func TestFileRecordStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := NewFileRecordStore(path, testLogger(t))
	ctx := context.Background()

	want := []models.MarketRecord{
		{UserID: "u1", MarketPrice: 5.5, HarvestAmount: 10, TotalCost: 100, TotalRevenue: 155, NetProfit: 55, Timestamp: "2026-03-01T10:00:00Z"},
		{UserID: "u2", MarketPrice: 6.25, HarvestAmount: 20, TotalCost: 200, TotalRevenue: 325, NetProfit: 125, Timestamp: "2026-03-02T10:00:00Z"},
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := store.Load(ctx)
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	// A second save fully replaces the file.
	if err := store.Save(ctx, want[:1]); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := store.Load(ctx); len(got) != 1 {
		t.Fatalf("expected 1 record after overwrite, got %d", len(got))
	}
}

func TestFileRecordStoreCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileRecordStore(path, testLogger(t))
	if records := store.Load(context.Background()); len(records) != 0 {
		t.Fatalf("corrupt store should read empty, got %d records", len(records))
	}
	// And the store recovers on the next save.
	if err := store.Save(context.Background(), []models.MarketRecord{{UserID: "u1", Timestamp: "2026-03-01T10:00:00Z"}}); err != nil {
		t.Fatalf("save after corruption: %v", err)
	}
	if records := store.Load(context.Background()); len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestFileRecordStoreSaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store := NewFileRecordStore(path, testLogger(t))
	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
}

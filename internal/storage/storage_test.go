package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pable/go-cs-smartban/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleComparison(matchID, team1 string) model.StoredComparison {
	return model.StoredComparison{
		MatchID:     matchID,
		GeneratedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Teams: model.MatchComparisonTable{
			{TeamName: team1, MapTable: []model.MapTableRow{{Name: "Dust2", ID: "de_dust2", AvgPlayed: 1, AvgWinrate: 1, AvgKD: 2, TotalKills: 20, TotalDeaths: 10}}},
			{TeamName: "team_b", MapTable: []model.MapTableRow{{Name: "Dust2", ID: "de_dust2"}}},
		},
	}
}

func TestLoadComparisonMissing(t *testing.T) {
	db := openMemDB(t)

	c, err := db.LoadComparison(context.Background(), ComparisonKey)
	if err != nil {
		t.Fatalf("LoadComparison: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil for empty store, got %+v", c)
	}
}

func TestComparisonRoundTrip(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	want := sampleComparison("m1", "team_a")
	if err := db.SaveComparison(ctx, ComparisonKey, want); err != nil {
		t.Fatalf("SaveComparison: %v", err)
	}

	got, err := db.LoadComparison(ctx, ComparisonKey)
	if err != nil {
		t.Fatalf("LoadComparison: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored comparison")
	}
	if got.MatchID != "m1" || got.Teams[0].TeamName != "team_a" {
		t.Errorf("unexpected header: %+v", got)
	}
	row := got.Teams[0].MapTable[0]
	if row.AvgKD != 2 || row.TotalKills != 20 || row.AvgWinrate != 1 {
		t.Errorf("row mismatch: %+v", row)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("GeneratedAt: want %v, got %v", want.GeneratedAt, got.GeneratedAt)
	}
}

func TestComparisonLastWriteWins(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.SaveComparison(ctx, ComparisonKey, sampleComparison("m1", "first"))
	if err := db.SaveComparison(ctx, ComparisonKey, sampleComparison("m2", "second")); err != nil {
		t.Fatalf("second SaveComparison should succeed: %v", err)
	}

	got, _ := db.LoadComparison(ctx, ComparisonKey)
	if got == nil || got.MatchID != "m2" || got.Teams[0].TeamName != "second" {
		t.Errorf("expected latest write to win, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	db := openMemDB(t)
	ctx := context.Background()

	db.Put(ctx, "k", []byte("v"))
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of missing key should succeed: %v", err)
	}
	v, _ := db.Get(ctx, "k")
	if v != nil {
		t.Errorf("expected key to be gone, got %q", v)
	}
}

func TestOpenFileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartban.db")
	ctx := context.Background()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	db.SaveComparison(ctx, ComparisonKey, sampleComparison("m7", "team_a"))
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, err := db.LoadComparison(ctx, ComparisonKey)
	if err != nil || got == nil || got.MatchID != "m7" {
		t.Errorf("expected persisted comparison, got %+v, err %v", got, err)
	}
}

package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "kiforge.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndFind(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	ctx := context.Background()

	rec := Record{
		ID:            "3f2a",
		Name:          "LQFP-64_10x10mm_P0.5mm",
		Family:        "LQFP",
		PinCount:      64,
		FootprintPath: "out/LQFP-64.kicad_mod",
		SymbolPath:    "out/LQFP-64.kicad_sym",
		ModelPath:     "out/LQFP-64.stl",
		Warnings:      2,
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Find(ctx, rec.Name)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.Family != "LQFP" || got.PinCount != 64 || got.Warnings != 2 {
		t.Errorf("Find = %+v, want saved record", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestSaveUpsertsByName(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	ctx := context.Background()

	first := Record{ID: "a", Name: "QFN-32", Family: "QFN", PinCount: 32, Warnings: 3}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := first
	second.ID = "b"
	second.Warnings = 0
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save (upsert): %v", err)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List returned %d records, want 1 after upsert", len(all))
	}
	if all[0].ID != "b" || all[0].Warnings != 0 {
		t.Errorf("record = %+v, want the replacing entry", all[0])
	}
}

func TestListFiltersByFamily(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	ctx := context.Background()

	for _, r := range []Record{
		{ID: "1", Name: "SOIC-8", Family: "SOIC", PinCount: 8},
		{ID: "2", Name: "SOIC-16", Family: "SOIC", PinCount: 16},
		{ID: "3", Name: "BGA-64", Family: "BGA", PinCount: 64},
	} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save %s: %v", r.Name, err)
		}
	}

	soic, err := s.List(ctx, "SOIC")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(soic) != 2 {
		t.Errorf("SOIC listing has %d records, want 2", len(soic))
	}
	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("full listing has %d records, want 3", len(all))
	}
}

func TestFindAndDeleteMissing(t *testing.T) {
	t.Parallel()
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.Find(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing) = %v, want %v", err, ErrNotFound)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want %v", err, ErrNotFound)
	}

	if err := s.Save(ctx, Record{ID: "x", Name: "DIP-8", Family: "DIP", PinCount: 8}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "DIP-8"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Find(ctx, "DIP-8"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find after delete = %v, want %v", err, ErrNotFound)
	}
}

package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	for _, reason := range []string{"first", "second", "third"} {
		s := &Snapshot{StorageKey: "k", Reason: reason, Document: datatypes.JSON(`{"projects":[]}`)}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
		if s.ID == 0 {
			t.Fatal("id not filled")
		}
	}
	if err := repo.Create(ctx, &Snapshot{StorageKey: "other"}); err != nil {
		t.Fatalf("create other: %v", err)
	}

	list, err := repo.List(ctx, "k", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Reason != "third" || list[1].Reason != "second" {
		t.Fatalf("list = %+v", list)
	}

	got, err := repo.Get(ctx, list[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got.Document) != `{"projects":[]}` {
		t.Fatalf("document = %s", got.Document)
	}

	if _, err := repo.Get(ctx, 9999); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

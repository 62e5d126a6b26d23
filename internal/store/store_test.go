package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProfile(ctx, "p1", []byte(`{"id":"p1"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc, err := s.LoadProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc) != `{"id":"p1"}` {
		t.Errorf("got %s", doc)
	}

	if _, err := s.LoadProfile(ctx, "missing"); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestProgressUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveProfile(ctx, "p1", []byte(`{}`)); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := s.SaveProgress(ctx, "p1", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	if err := s.SaveProgress(ctx, "p1", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("resave progress: %v", err)
	}
	doc, err := s.LoadProgress(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc) != `{"v":2}` {
		t.Errorf("got %s, want the second write", doc)
	}
}

func TestDeleteProfile_CascadesAndClearsActive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.SaveProfile(ctx, "p1", []byte(`{}`))
	s.SaveProgress(ctx, "p1", []byte(`{}`))
	s.SetActiveProfile(ctx, "p1")

	if err := s.DeleteProfile(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.LoadProgress(ctx, "p1"); err != ErrNotFound {
		t.Errorf("progress survived delete: %v", err)
	}
	if _, err := s.ActiveProfile(ctx); err != ErrNotFound {
		t.Errorf("active pointer survived delete: %v", err)
	}
}

func TestActiveProfile(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.ActiveProfile(ctx); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound when unset", err)
	}
	s.SaveProfile(ctx, "p2", []byte(`{}`))
	if err := s.SetActiveProfile(ctx, "p2"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	id, err := s.ActiveProfile(ctx)
	if err != nil || id != "p2" {
		t.Errorf("got %q/%v, want p2", id, err)
	}
}

func TestTeacherImports(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.SaveTeacherImport(ctx, "a", "Lincoln", "6B", []byte(`{"profileId":"a"}`))
	s.SaveTeacherImport(ctx, "b", "Lincoln", "6B", []byte(`{"profileId":"b"}`))
	s.SaveTeacherImport(ctx, "c", "Lincoln", "7A", []byte(`{"profileId":"c"}`))
	// Re-import replaces, not duplicates.
	s.SaveTeacherImport(ctx, "a", "Lincoln", "6B", []byte(`{"profileId":"a","v":2}`))

	docs, err := s.ListTeacherImports(ctx, "Lincoln", "6B")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	groups, err := s.ListClassGroups(ctx)
	if err != nil {
		t.Fatalf("groups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].ClassGroup != "6B" || groups[0].Students != 2 {
		t.Errorf("got %+v", groups[0])
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.SaveProfile(ctx, "p1", []byte(`{}`))
	s.SaveTeacherImport(ctx, "a", "s", "c", []byte(`{}`))
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	docs, _ := s.ListProfiles(ctx)
	if len(docs) != 0 {
		t.Errorf("profiles survived reset")
	}
}

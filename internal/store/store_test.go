package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"swipelist/internal/model"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s := Store{Dir: filepath.Join(t.TempDir(), "entries")}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func titles(es []model.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Title
	}
	return out
}

func TestStore_AddListMove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if !s.Initialized() {
		t.Fatalf("expected the database to exist after Init")
	}
	var ids []string
	for _, title := range []string{"one", "two", "three", "four"} {
		e, err := s.Add(ctx, title, "")
		if err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
		ids = append(ids, e.ID)
	}

	es, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := titles(es); !sameIDs(got, []string{"one", "two", "three", "four"}) {
		t.Fatalf("expected insertion order; got %v", got)
	}

	order, err := s.Move(ctx, ids[3], 1)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []string{"one", "four", "two", "three"}
	if got := titles(order); !sameIDs(got, want) {
		t.Fatalf("expected planned order %v; got %v", want, got)
	}
	es, _ = s.List(ctx)
	if got := titles(es); !sameIDs(got, want) {
		t.Fatalf("expected persisted order %v; got %v", want, got)
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	e, err := s.Add(ctx, "draft", "*body*")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.SetDone(ctx, e.ID, true); err != nil {
		t.Fatalf("SetDone: %v", err)
	}
	if err := s.Edit(ctx, e.ID, "final", "*body*"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	got, err := s.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Done || got.Title != "final" || got.Body != "*body*" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, e.ID); !IsNotFound(err) {
		t.Fatalf("expected not found after delete; got %v", err)
	}
	if err := s.Delete(ctx, e.ID); !IsNotFound(err) {
		t.Fatalf("expected deleting twice to report not found; got %v", err)
	}
}

func TestStore_AddRequiresTitle(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add(context.Background(), "  ", ""); err == nil {
		t.Fatalf("expected an empty title to be rejected")
	}
}

func TestViewState_RoundTripAndCorruption(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	st, err := s.LoadViewState()
	if err != nil || st.Version != 1 || len(st.SelectedIDs) != 0 || st.Saved {
		t.Fatalf("expected an empty state; got %+v %v", st, err)
	}

	in := &model.ViewState{SelectedIDs: []string{"e-1"}, ExpandedIDs: []string{"e-2"}, Exclusive: true, ScrollOffset: 4}
	if err := s.SaveViewState(in); err != nil {
		t.Fatalf("SaveViewState: %v", err)
	}
	out, err := s.LoadViewState()
	if err != nil {
		t.Fatalf("LoadViewState: %v", err)
	}
	if !out.Saved || !sameIDs(out.SelectedIDs, in.SelectedIDs) || !sameIDs(out.ExpandedIDs, in.ExpandedIDs) || !out.Exclusive || out.ScrollOffset != 4 {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	if err := os.WriteFile(s.viewStatePath(), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err = s.LoadViewState()
	if err != nil || len(out.SelectedIDs) != 0 {
		t.Fatalf("expected a corrupt file to read as empty; got %+v %v", out, err)
	}
}

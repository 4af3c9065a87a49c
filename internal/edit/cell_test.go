package edit

import (
	"context"
	"errors"
	"testing"
)

func TestNumberCommit(t *testing.T) {
	cell := NewNumberCell(3)
	cell.Begin()
	if cell.State() != Editing || cell.Buffer() != "3" {
		t.Fatalf("after Begin: state=%v buffer=%q", cell.State(), cell.Buffer())
	}
	cell.SetBuffer("7")

	var saved any
	_, err := cell.Commit(context.Background(), func(ctx context.Context, v any) error {
		saved = v
		return nil
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if saved != 7 {
		t.Errorf("saved %v, want 7", saved)
	}
	if cell.State() != Viewing || cell.Value() != "7" {
		t.Errorf("after commit: state=%v value=%q", cell.State(), cell.Value())
	}
}

func TestNumberCoercionDefaultsToZero(t *testing.T) {
	for _, bad := range []string{"abc", "", "  "} {
		cell := NewNumberCell(5)
		cell.Begin()
		cell.SetBuffer(bad)
		var saved any
		cell.Commit(context.Background(), func(ctx context.Context, v any) error {
			saved = v
			return nil
		})
		if saved != 0 {
			t.Errorf("buffer %q saved as %v, want 0", bad, saved)
		}
	}
}

func TestCommitFailureRollsBack(t *testing.T) {
	cell := NewTextCell("old")
	cell.Begin()
	cell.SetBuffer("new")

	wantErr := errors.New("transport down")
	attempted, err := cell.Commit(context.Background(), func(ctx context.Context, v any) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}
	if attempted != "new" {
		t.Errorf("attempted = %v, want the rejected value", attempted)
	}
	if cell.State() != Viewing || cell.Value() != "old" {
		t.Errorf("no rollback: state=%v value=%q", cell.State(), cell.Value())
	}
}

func TestCancelRestoresOriginal(t *testing.T) {
	cell := NewTextCell("keep")
	cell.Begin()
	cell.SetBuffer("discard")
	cell.Cancel()
	if cell.State() != Viewing || cell.Value() != "keep" {
		t.Errorf("after cancel: state=%v value=%q", cell.State(), cell.Value())
	}
}

func TestCommitOutsideEditingIsNoop(t *testing.T) {
	cell := NewTextCell("v")
	called := false
	cell.Commit(context.Background(), func(ctx context.Context, v any) error {
		called = true
		return nil
	})
	if called {
		t.Error("save called while Viewing")
	}
}

func TestBeginWhileEditingIsNoop(t *testing.T) {
	cell := NewTextCell("v")
	cell.Begin()
	cell.SetBuffer("staged")
	cell.Begin()
	if cell.Buffer() != "staged" {
		t.Errorf("second Begin clobbered buffer: %q", cell.Buffer())
	}
}

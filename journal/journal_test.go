package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndGet(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	start := time.Unix(1700000000, 123)
	run := &Run{
		ID:         "3f1c2a9e-0000-4000-8000-000000000001",
		Program:    "hello",
		StartedAt:  start,
		FinishedAt: start.Add(time.Millisecond),
		Steps:      13,
		Output:     "H e l l o ",
		Snapshot:   []byte{0xa1, 0x01, 0x02},
	}
	if err := j.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := j.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Program != "hello" || got.Steps != 13 || got.Output != run.Output || got.Err != "" {
		t.Errorf("got %+v, want %+v", got, run)
	}
	if !got.StartedAt.Equal(run.StartedAt) || !got.FinishedAt.Equal(run.FinishedAt) {
		t.Errorf("times = %v..%v, want %v..%v", got.StartedAt, got.FinishedAt, run.StartedAt, run.FinishedAt)
	}
	if string(got.Snapshot) != string(run.Snapshot) {
		t.Errorf("snapshot = %x, want %x", got.Snapshot, run.Snapshot)
	}
}

func TestRecordReplaces(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	run := &Run{ID: "a", Program: "random", StartedAt: time.Now()}
	if err := j.Record(ctx, run); err != nil {
		t.Fatal(err)
	}
	run.Err = "funge: empty input"
	if err := j.Record(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := j.Get(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Err != "funge: empty input" {
		t.Errorf("err = %q, want replaced value", got.Err)
	}
}

func TestGetNotFound(t *testing.T) {
	j := openTemp(t)
	if _, err := j.Get(context.Background(), "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
}

func TestRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	for n, id := range []string{"first", "second", "third"} {
		r := &Run{ID: id, Program: "p", StartedAt: base.Add(time.Duration(n) * time.Second)}
		if err := j.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "third" || runs[1].ID != "second" {
		t.Errorf("order = %s, %s; want third, second", runs[0].ID, runs[1].ID)
	}
}

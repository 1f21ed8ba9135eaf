package store

import (
	"errors"
	"testing"
	"time"

	"github.com/gopherforge/primish/internal/geom"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testCheckpoint(jobID string) *Checkpoint {
	return &Checkpoint{
		JobID:        jobID,
		History:      []geom.Encoded{{Kind: geom.KindCircle, Params: []float64{10, 10, 5}}},
		Colors:       [][4]uint8{{10, 20, 30, 128}},
		BestScore:    0.3,
		InitialScore: 0.8,
		Iteration:    1,
		Timestamp:    time.Now(),
		Config: JobConfig{
			RefPath:    "ref.png",
			Mode:       "circle",
			ShapeCount: 50,
			Workers:    2,
			Seed:       1,
			Alpha:      128,
		},
	}
}

func TestFSStoreSaveAndLoadCheckpoint(t *testing.T) {
	s := newTestStore(t)
	cp := testCheckpoint("job-a")

	if err := s.SaveCheckpoint("job-a", cp); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadCheckpoint("job-a")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BestScore != cp.BestScore || loaded.Config.Mode != cp.Config.Mode {
		t.Fatalf("loaded checkpoint mismatch: %+v", loaded)
	}
	if len(loaded.History) != 1 || loaded.History[0].Kind != geom.KindCircle {
		t.Fatalf("loaded history mismatch: %+v", loaded.History)
	}
}

func TestFSStoreLoadCheckpointMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LoadCheckpoint("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreListCheckpointsReturnsMetadataForEach(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveCheckpoint("job-a", testCheckpoint("job-a")); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveCheckpoint("job-b", testCheckpoint("job-b")); err != nil {
		t.Fatal(err)
	}

	infos, err := s.ListCheckpoints()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", len(infos))
	}
}

func TestFSStoreListCheckpointsEmptyWhenNoJobs(t *testing.T) {
	s := newTestStore(t)
	infos, err := s.ListCheckpoints()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected no checkpoints, got %d", len(infos))
	}
}

func TestFSStoreDeleteCheckpointRemovesJobDir(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveCheckpoint("job-a", testCheckpoint("job-a")); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCheckpoint("job-a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadCheckpoint("job-a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected checkpoint to be gone, got %v", err)
	}
}

func TestFSStoreDeleteCheckpointMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeleteCheckpoint("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreSaveCheckpointOverwritesExisting(t *testing.T) {
	s := newTestStore(t)
	cp := testCheckpoint("job-a")
	if err := s.SaveCheckpoint("job-a", cp); err != nil {
		t.Fatal(err)
	}
	cp.BestScore = 0.1
	cp.Iteration = 2
	if err := s.SaveCheckpoint("job-a", cp); err != nil {
		t.Fatal(err)
	}
	loaded, err := s.LoadCheckpoint("job-a")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BestScore != 0.1 || loaded.Iteration != 2 {
		t.Fatalf("expected overwritten checkpoint, got %+v", loaded)
	}
}

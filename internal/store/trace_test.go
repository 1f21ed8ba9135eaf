package store

import (
	"io"
	"testing"
	"time"
)

func TestTraceWriterReaderRoundTrip(t *testing.T) {
	dir := t.TempDir()

	w, err := NewTraceWriter(dir, "job-1", false)
	if err != nil {
		t.Fatal(err)
	}
	entries := []TraceEntry{
		{Iteration: 1, Score: 0.9, Timestamp: time.Now()},
		{Iteration: 2, Score: 0.7, Timestamp: time.Now()},
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewTraceReader(dir, "job-1")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i, e := range got {
		if e.Iteration != entries[i].Iteration || e.Score != entries[i].Score {
			t.Fatalf("entry %d mismatch: %+v vs %+v", i, e, entries[i])
		}
	}
}

func TestTraceReaderReadReturnsEOFWhenExhausted(t *testing.T) {
	dir := t.TempDir()
	w, err := NewTraceWriter(dir, "job-2", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(TraceEntry{Iteration: 1, Score: 0.5, Timestamp: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewTraceReader(dir, "job-2")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Read(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestNewTraceReaderMissingFileReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := NewTraceReader(dir, "missing-job")
	if err == nil {
		t.Fatal("expected error for missing trace file")
	}
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
}

func TestDeleteTraceIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	if err := DeleteTrace(dir, "never-existed"); err != nil {
		t.Fatalf("expected nil error for missing trace, got %v", err)
	}
}

func TestTraceWriterAppendMode(t *testing.T) {
	dir := t.TempDir()
	w1, err := NewTraceWriter(dir, "job-3", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := w1.Write(TraceEntry{Iteration: 1, Score: 1.0, Timestamp: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := w1.Close(); err != nil {
		t.Fatal(err)
	}

	w2, err := NewTraceWriter(dir, "job-3", true)
	if err != nil {
		t.Fatal(err)
	}
	if err := w2.Write(TraceEntry{Iteration: 2, Score: 0.8, Timestamp: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := w2.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewTraceReader(dir, "job-3")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after append, got %d", len(got))
	}
}

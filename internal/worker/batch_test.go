package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/grantab/internal/model"
)

// fakeRunner records the paths it was asked to analyze
type fakeRunner struct {
	failOn string
}

func (r *fakeRunner) Run(ctx context.Context, path string) (*model.Report, error) {
	if r.failOn != "" && strings.Contains(path, r.failOn) {
		return nil, errors.New("analysis failed")
	}
	return &model.Report{SourcePath: path}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	b := NewBatchProcessor(&fakeRunner{}, 3)

	paths := []string{"c.csv", "a.csv", "b.csv"}
	results := b.ProcessPaths(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	// Stable ordering regardless of completion order
	for i, want := range []string{"a.csv", "b.csv", "c.csv"} {
		if results[i].Path != want {
			t.Errorf("Result %d path = %s, want %s", i, results[i].Path, want)
		}
		if results[i].Error != nil {
			t.Errorf("Result %d unexpected error: %v", i, results[i].Error)
		}
		if results[i].Report == nil || results[i].Report.SourcePath != want {
			t.Errorf("Result %d missing report for %s", i, want)
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	b := NewBatchProcessor(&fakeRunner{failOn: "bad"}, 2)

	results := b.ProcessPaths(context.Background(), []string{"good.csv", "bad.csv"})
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_ProcessDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"one.csv", "two.csv", "ignored.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	b := NewBatchProcessor(&fakeRunner{}, 2)
	results, err := b.ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 CSV results, got %d", len(results))
	}
}

func TestBatchProcessor_EmptyDir(t *testing.T) {
	b := NewBatchProcessor(&fakeRunner{}, 2)
	if _, err := b.ProcessDir(context.Background(), t.TempDir()); err == nil {
		t.Error("Expected error for directory without CSV files")
	}
}

func TestBatchProcessor_NoPaths(t *testing.T) {
	b := NewBatchProcessor(&fakeRunner{}, 2)
	results := b.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

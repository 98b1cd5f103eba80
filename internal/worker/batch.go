package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ppiankov/grantab/internal/model"
)

// Runner analyzes a single dataset file
type Runner interface {
	Run(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob runs the experiment pipeline over one CSV
type AnalyzeJob struct {
	Path   string
	Runner Runner
}

// Execute implements Job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.Run(ctx, j.Path)
	return &AnalyzeResult{Path: j.Path, Report: report, Error: err}
}

// AnalyzeResult is the outcome of analyzing one dataset file
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError implements Result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple dataset files concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given parallelism
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{runner: runner, concurrency: concurrency}
}

// ProcessPaths analyzes the given CSV files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, Runner: b.runner})
	}

	raw := pool.Wait()
	results := make([]*AnalyzeResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*AnalyzeResult)
	}

	// Pool completion order is arbitrary; report in a stable order
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// ProcessDir analyzes every CSV file in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*AnalyzeResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", dir)
	}
	return b.ProcessPaths(ctx, paths), nil
}

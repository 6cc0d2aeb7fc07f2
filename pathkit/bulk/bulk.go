// Package bulk provides concurrent batch operations over many raw path
// strings. The work is pure string processing; nothing here touches the
// filesystem.
package bulk

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/ZanzyTHEbar/pathkit/pathkit/paths"
	"github.com/ZanzyTHEbar/pathkit/pathkit/trees"

	"github.com/sourcegraph/conc/pool"
)

// Processor fans batch work out over a bounded worker pool.
type Processor struct {
	maxWorkers int
	chunkSize  int
}

// NewProcessor creates a Processor with a worker count suited to CPU-bound
// work: CPU cores * 2, floored at 4 for responsiveness and capped at 32 to
// prevent resource exhaustion.
func NewProcessor() *Processor {
	maxWorkers := min(max(runtime.NumCPU()*2, 4), 32)
	return &Processor{
		maxWorkers: maxWorkers,
		chunkSize:  1024,
	}
}

// NewProcessorWith creates a Processor with explicit tuning, falling back
// to the defaults for non-positive values.
func NewProcessorWith(maxWorkers, chunkSize int) *Processor {
	pr := NewProcessor()
	if maxWorkers > 0 {
		pr.maxWorkers = maxWorkers
	}
	if chunkSize > 0 {
		pr.chunkSize = chunkSize
	}
	return pr
}

// NormalizeAll normalizes raws concurrently, preserving order. It stops
// early and returns the context error when ctx is cancelled.
func (pr *Processor) NormalizeAll(ctx context.Context, raws []string) ([]paths.LocalPath, error) {
	out := make([]paths.LocalPath, len(raws))

	p := pool.New().WithMaxGoroutines(pr.maxWorkers).WithContext(ctx)

	for start := 0; start < len(raws); start += pr.chunkSize {
		end := min(start+pr.chunkSize, len(raws))
		p.Go(func(ctx context.Context) error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = paths.New(raws[i])
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Bulk normalization completed",
		"inputs", len(raws),
		"max_workers", pr.maxWorkers)

	return out, nil
}

// IndexAll normalizes raws concurrently and inserts them into idx with a
// nil payload. The index handles its own synchronization, so workers insert
// directly.
func (pr *Processor) IndexAll(ctx context.Context, idx *trees.PathIndex, raws []string) error {
	p := pool.New().WithMaxGoroutines(pr.maxWorkers).WithContext(ctx)

	for start := 0; start < len(raws); start += pr.chunkSize {
		end := min(start+pr.chunkSize, len(raws))
		p.Go(func(ctx context.Context) error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := idx.Insert(paths.New(raws[i]), nil); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	slog.Debug("Bulk indexing completed",
		"inputs", len(raws),
		"index_size", idx.Size())

	return nil
}

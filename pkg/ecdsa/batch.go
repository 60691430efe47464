package ecdsa

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Job is one signature to check.
type Job struct {
	// ID is an optional caller label carried into the Result.
	ID        string
	PublicKey *PublicKey
	Hash      []byte
	Signature *Signature
}

// Result is the outcome of one Job.  Err is nil for a valid signature.
type Result struct {
	Index int
	ID    string
	Err   error
}

// Valid reports whether the signature verified.
func (r Result) Valid() bool {
	return r.Err == nil
}

// BatchConfig controls how a batch is sharded across goroutines.
type BatchConfig struct {
	// Workers limits the number of concurrent goroutines (0 = auto-detect)
	Workers int

	// ChunkSize is the number of jobs handed to a goroutine at a time
	ChunkSize int
}

// DefaultBatchConfig returns a configuration that uses one worker per CPU.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Workers:   0,
		ChunkSize: 8,
	}
}

// BatchVerifier verifies independent signatures in parallel.  Signatures
// share no state, so jobs are simply split into chunks and each chunk is
// verified sequentially on its own goroutine.
type BatchVerifier struct {
	config BatchConfig
	logger *slog.Logger
}

// NewBatchVerifier creates a verifier with the default configuration and no
// logging.
func NewBatchVerifier() *BatchVerifier {
	return &BatchVerifier{
		config: DefaultBatchConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithConfig sets the sharding configuration.
func (v *BatchVerifier) WithConfig(config BatchConfig) *BatchVerifier {
	v.config = config
	return v
}

// WithLogger sets the logger used for progress messages.
func (v *BatchVerifier) WithLogger(logger *slog.Logger) *BatchVerifier {
	v.logger = logger
	return v
}

// Verify checks every job and returns one result per job, in job order.  The
// returned error is non-nil only when ctx is cancelled before the batch
// completes, in which case the results are incomplete.
func (v *BatchVerifier) Verify(ctx context.Context, jobs []Job) ([]Result, error) {
	workers := v.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := v.config.ChunkSize
	if chunk <= 0 {
		chunk = 1
	}

	results := make([]Result, len(jobs))
	var valid atomic.Int64
	start := time.Now()
	v.logger.Debug("batch verification starting", "jobs", len(jobs),
		"workers", workers, "chunk_size", chunk)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(jobs); lo += chunk {
		hi := min(lo+chunk, len(jobs))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				job := jobs[i]
				err := Verify(job.PublicKey, job.Hash, job.Signature)
				results[i] = Result{Index: i, ID: job.ID, Err: err}
				if err == nil {
					valid.Add(1)
				} else {
					v.logger.Debug("signature rejected", "index", i,
						"id", job.ID, "err", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		v.logger.Warn("batch verification cancelled", "err", err)
		return results, err
	}

	v.logger.Info("batch verification finished", "jobs", len(jobs),
		"valid", valid.Load(), "elapsed", time.Since(start))
	return results, nil
}

// Package scheduler implements the parallel trial scheduler (spec
// §4.8/§5 / C8): partitioning num_trials into contiguous shards, one
// goroutine per shard, each with its own RNG, joined with a
// shard-ascending result assembly. The teacher runs exactly one CPU on
// one thread and never shards work, so this package has no direct
// teacher analogue (see SPEC_FULL.md §11); the worker/shard vocabulary
// is borrowed from the pack's broader task-sharding examples and
// implemented with plain goroutines and a sync.WaitGroup, the
// teacher's own only concurrency primitive (cmd/profile/main.go's
// "go func(){ time.Sleep(...) }" profiling timeout).
package scheduler

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sarchlab/mcrecipe/engine"
	"github.com/sarchlab/mcrecipe/ir"
	"github.com/sarchlab/mcrecipe/value"
)

// Shard is a contiguous range of trial indices assigned to one worker
// goroutine (spec Glossary "Shard").
type Shard struct {
	Start int
	Count int
}

// Partition divides numTrials into workers contiguous shards, shard 0
// absorbing the remainder (spec §9 Open Questions: "the source assigns
// all remainder trials to shard 0" — preserved rather than redesigned).
// Shards with Count == 0 are omitted.
func Partition(numTrials, workers int) []Shard {
	if workers < 1 {
		workers = 1
	}
	base := numTrials / workers
	remainder := numTrials % workers

	shards := make([]Shard, 0, workers)
	cursor := 0
	for w := 0; w < workers; w++ {
		count := base
		if w == 0 {
			count += remainder
		}
		if count == 0 {
			continue
		}
		shards = append(shards, Shard{Start: cursor, Count: count})
		cursor += count
	}
	return shards
}

// Run executes prog.NumTrials trials of prog against snapshot across
// workers goroutines (spec §4.8 C8). Each goroutine clones snapshot
// once per trial, via engine.RunTrial, using its own entropy-seeded
// *rand.Rand — never a generator shared across goroutines (spec §9 RNG
// ownership). A failing worker stores its error and stops; siblings
// run to completion regardless (spec §4.8 Cancellation: "they do not
// observe cancellation"). After every goroutine joins, the first
// recorded error (if any) is returned and results are discarded;
// otherwise results are concatenated shard-ascending.
func Run(prog *ir.Program, snapshot value.Context, workers int, log zerolog.Logger) ([]value.Value, error) {
	runID := uuid.New()
	shards := Partition(prog.NumTrials, workers)

	log.Info().
		Str("run_id", runID.String()).
		Int("num_trials", prog.NumTrials).
		Int("workers", workers).
		Int("shards", len(shards)).
		Msg("scheduler: starting run")

	results := make([][]value.Value, len(shards))

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	for i, shard := range shards {
		wg.Add(1)
		go func(i int, shard Shard) {
			defer wg.Done()

			shardResults, err := runShard(prog, snapshot, shard)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				log.Error().
					Str("run_id", runID.String()).
					Int("shard", i).
					Err(err).
					Msg("scheduler: shard failed")
				return
			}
			results[i] = shardResults
			log.Debug().
				Str("run_id", runID.String()).
				Int("shard", i).
				Int("count", len(shardResults)).
				Msg("scheduler: shard completed")
		}(i, shard)
	}

	wg.Wait()

	if firstErr != nil {
		log.Error().
			Str("run_id", runID.String()).
			Err(firstErr).
			Msg("scheduler: run failed")
		return nil, firstErr
	}

	out := make([]value.Value, 0, prog.NumTrials)
	for _, shardResults := range results {
		out = append(out, shardResults...)
	}

	log.Info().
		Str("run_id", runID.String()).
		Int("results", len(out)).
		Msg("scheduler: run complete")

	return out, nil
}

// runShard runs one shard's trials sequentially within its own
// goroutine (spec §4.8 "within a worker, execution is sequential"),
// returning as soon as any trial fails.
func runShard(prog *ir.Program, snapshot value.Context, shard Shard) ([]value.Value, error) {
	rng := engine.NewEntropyRand()
	out := make([]value.Value, 0, shard.Count)
	for k := 0; k < shard.Count; k++ {
		result, err := engine.RunTrial(prog, snapshot, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

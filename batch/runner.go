/*
 * runner.go, part of gdytac.
 *
 * Copyright 2024 The gdytac Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package batch runs one job per model over a bounded pool of goroutines.
// A failed model is logged and reported, and never stops the others.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	chem "github.com/gdytac/gdytac"
	"golang.org/x/sync/errgroup"
)

// Runner runs jobs concurrently, at most Workers at a time.
type Runner struct {
	Workers int          //0 or less means runtime.NumCPU()
	Logger  *slog.Logger //nil means slog.Default
	Metrics *Metrics     //may be nil
	done    atomic.Int64
}

// Failure is a job that returned an error.
type Failure struct {
	Index int
	Name  string
	Err   error
}

// Report summarizes a Run.
type Report struct {
	Total    int
	Done     int //jobs that finished, failed or not
	Failures []Failure
	Elapsed  time.Duration
}

// Succeeded returns the number of jobs that finished without error.
func (R *Report) Succeeded() int { return R.Done - len(R.Failures) }

// Err returns nil if every job ran and succeeded, and an error describing
// the first failure otherwise.
func (R *Report) Err() error {
	switch {
	case len(R.Failures) > 0:
		f := R.Failures[0]
		return fmt.Errorf("%d of %d jobs failed, first %s: %w", len(R.Failures), R.Total, f.Name, f.Err)
	case R.Done < R.Total:
		return fmt.Errorf("only %d of %d jobs ran", R.Done, R.Total)
	}
	return nil
}

// Progress returns the number of jobs finished by the runner so far, over
// all its runs. It only grows.
func (R *Runner) Progress() int64 { return R.done.Load() }

func (R *Runner) logger() *slog.Logger {
	if R.Logger == nil {
		return slog.Default()
	}
	return R.Logger
}

// Run calls fn for every item, concurrently. name labels the items in logs
// and in the report. Errors from fn are recorded and don't stop the other
// jobs. When ctx is done no new jobs are started, and Run returns after the
// running ones finish.
func Run[T any](ctx context.Context, R *Runner, items []T, name func(T) string, fn func(context.Context, T) error) *Report {
	workers := R.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := R.logger()
	rep := &Report{Total: len(items)}
	var mu sync.Mutex
	var finished atomic.Int64
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, item := range items {
		if ctx.Err() != nil {
			log.Warn("run cancelled", "started", i, "total", len(items), "err", ctx.Err())
			break
		}
		i, item := i, item
		g.Go(func() error {
			t := time.Now()
			err := runOne(ctx, fn, item)
			if R.Metrics != nil {
				R.Metrics.Duration.Observe(time.Since(t).Seconds())
			}
			finished.Add(1)
			R.done.Add(1)
			if err != nil {
				label := name(item)
				log.Error("job failed", "index", i, "name", label, "err", err, "kind", chem.KindOf(err).String())
				if R.Metrics != nil {
					R.Metrics.Failed.Inc()
				}
				mu.Lock()
				rep.Failures = append(rep.Failures, Failure{Index: i, Name: label, Err: err})
				mu.Unlock()
				return nil //the other jobs go on.
			}
			if R.Metrics != nil {
				R.Metrics.Exported.Inc()
			}
			return nil
		})
	}
	g.Wait()
	rep.Done = int(finished.Load())
	rep.Elapsed = time.Since(start)
	sort.Slice(rep.Failures, func(i, j int) bool { return rep.Failures[i].Index < rep.Failures[j].Index })
	log.Info("run finished", "total", rep.Total, "done", rep.Done, "failed", len(rep.Failures), "elapsed", rep.Elapsed)
	return rep
}

// runOne returns a panic in fn as an error.
func runOne[T any](ctx context.Context, fn func(context.Context, T) error, item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, item)
}

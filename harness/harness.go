// Package harness drives the fixed CRUD sequence against one backend
// and records a wall-clock-disjoint duration per operation. Backends
// run strictly one after another; overlapping them would let resource
// contention corrupt the comparison.
package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"dbbench/backend"
	"dbbench/dataset"
)

// Fixed workload parameters, shared by every backend so their timings
// measure the same work.
const (
	PointKey          = 2500
	PointRepeats      = 1000
	UserOrdersKey     = 1234
	UserOrdersRepeats = 100
	RangeMinAmount    = 300
)

const (
	OpCreate         = "Create"
	OpReadPoint      = "Read-1 Point"
	OpReadRange      = "Read-2 Range"
	OpReadUserOrders = "Read-3 UserOrders"
	OpUpdate         = "Update"
	OpDelete         = "Delete"
)

// Operations lists the benchmarked operations in execution order.
var Operations = []string{OpCreate, OpReadPoint, OpReadRange, OpReadUserOrders, OpUpdate, OpDelete}

// Result holds the timings of one backend run.
type Result struct {
	RunID       uuid.UUID
	Backend     string
	Operations  []string // completed operations, in execution order
	DurationsMs map[string]float64
}

// Outcome pairs a backend with either its result or the error that
// skipped or aborted its run.
type Outcome struct {
	Backend string
	Result  *Result
	Err     error
}

// Run executes setup plus the six timed operations in order, each
// timed with the monotonic clock and none overlapping. Setup failures
// (ErrConnection, ErrSchema) and operation failures both abort the run
// with no partial timings; Teardown runs regardless.
func Run(b backend.Backend, users []dataset.User, orders []dataset.Order) (*Result, error) {
	result := &Result{
		RunID:       uuid.New(),
		Backend:     b.Name(),
		DurationsMs: map[string]float64{},
	}

	defer func() {
		if err := b.Teardown(); err != nil {
			zlog.Warn().Str("backend", b.Name()).Err(err).Msg("Teardown failed")
		}
	}()

	if err := b.Setup(); err != nil {
		return nil, fmt.Errorf("setup %s: %w", b.Name(), err)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{OpCreate, func() error {
			return b.Create(users, orders)
		}},
		{OpReadPoint, func() error {
			for i := 0; i < PointRepeats; i++ {
				if _, err := b.ReadPoint(PointKey); err != nil {
					return err
				}
			}
			return nil
		}},
		{OpReadRange, func() error {
			_, err := b.ReadRange(backend.Predicate{MinAmount: RangeMinAmount, Status: dataset.StatusPaid})
			return err
		}},
		{OpReadUserOrders, func() error {
			for i := 0; i < UserOrdersRepeats; i++ {
				if _, err := b.ReadRange(backend.Predicate{UserID: UserOrdersKey}); err != nil {
					return err
				}
			}
			return nil
		}},
		{OpUpdate, func() error {
			return b.Update(backend.Predicate{Status: dataset.StatusPending}, backend.Patch{Status: dataset.StatusPaid})
		}},
		{OpDelete, func() error {
			return b.Delete(backend.Predicate{Status: dataset.StatusCancelled})
		}},
	}

	for _, step := range steps {
		ms, err := measure(step.run)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", step.name, b.Name(), err)
		}

		result.Operations = append(result.Operations, step.name)
		result.DurationsMs[step.name] = ms

		zlog.Debug().Str("run", result.RunID.String()).Str("backend", b.Name()).
			Str("operation", step.name).Float64("ms", ms).Msg("completed")
		fmt.Printf("[%s] %s: %.2f ms\n", b.Name(), step.name, ms)
	}

	return result, nil
}

// RunAll benchmarks each backend in order, isolating failures: one
// backend's skip or abort never stops the rest.
func RunAll(backends []backend.Backend, users []dataset.User, orders []dataset.Order) []Outcome {
	outcomes := make([]Outcome, 0, len(backends))

	for _, b := range backends {
		zlog.Info().Str("backend", b.Name()).Msg("Run started")

		result, err := Run(b, users, orders)
		if err != nil {
			if errors.Is(err, backend.ErrConnection) || errors.Is(err, backend.ErrSchema) {
				fmt.Printf("Skipping %s: %v\n", b.Name(), err)
			} else {
				fmt.Printf("Aborting %s: %v\n", b.Name(), err)
			}
		}

		outcomes = append(outcomes, Outcome{Backend: b.Name(), Result: result, Err: err})
		zlog.Info().Str("backend", b.Name()).Msg("Run ended")
	}

	return outcomes
}

func measure(f func() error) (float64, error) {
	start := time.Now()
	err := f()
	return float64(time.Since(start).Nanoseconds()) / 1e6, err
}

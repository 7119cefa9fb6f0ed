package main

import (
	"log/slog"
	"math"
	"time"

	"github.com/kjkrol/instancegl/pkg/frame"
)

// benchInputs is the number of arguments, 0 through benchInputs-1, each
// candidate is called with per round.
const benchInputs = 40

func fibonacci(n int32) int32 {
	if n < 2 {
		return n
	}
	return fibonacci(n-1) + fibonacci(n-2)
}

type candidate struct {
	name string
	fn   func(int32) int32
}

type result struct {
	Name  string
	Total time.Duration
	// Percent is Total relative to the slowest candidate, to one decimal.
	Percent float64
}

// bench calls every candidate in turn with 0..inputs-1 until budget per
// candidate has passed, and reports the time each one accumulated. The sum of
// all results is returned so the calls cannot be optimized away.
func bench(clock frame.Clock, budget time.Duration, inputs int32, candidates ...candidate) ([]result, int64) {
	results := make([]result, len(candidates))
	for i, c := range candidates {
		results[i].Name = c.name
	}
	if len(candidates) == 0 {
		return results, 0
	}

	var sum int64
	start := clock.Now()
	for clock.Now()-start < budget*time.Duration(len(candidates)) {
		for i, c := range candidates {
			t0 := clock.Now()
			for n := int32(0); n < inputs; n++ {
				sum += int64(c.fn(n))
			}
			results[i].Total += clock.Now() - t0
		}
	}

	var slowest time.Duration
	for _, r := range results {
		slowest = max(slowest, r.Total)
	}
	for i := range results {
		if slowest > 0 {
			results[i].Percent = math.Round(1000*float64(results[i].Total)/float64(slowest)) / 10
		}
	}
	return results, sum
}

func report(logger *slog.Logger, results []result) {
	for _, r := range results {
		logger.Info("bench", "candidate", r.Name, "percent", r.Percent, "ms", float64(r.Total)/float64(time.Millisecond))
	}
}

//go:build !js

// Command wasm-bench times the recursive fibonacci that the wasm build
// exports to the browser.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/kjkrol/instancegl/pkg/frame"
)

func main() {
	budget := flag.Duration("budget", time.Second, "time spent per candidate")
	inputs := flag.Int("n", benchInputs, "arguments 0..n-1 per round")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	results, sum := bench(frame.NewSystemClock(), *budget, int32(*inputs), candidate{name: "go", fn: fibonacci})
	report(logger, results)
	logger.Debug("checksum", "sum", sum)
}

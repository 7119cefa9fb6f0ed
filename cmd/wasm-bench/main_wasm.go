//go:build js && wasm

// Command wasm-bench exports fibonacci to the page and times it against the
// page's own jsFibonacci.
//
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-bench/web/main.wasm ./cmd/wasm-bench
package main

import (
	"log/slog"
	"os"
	"syscall/js"
	"time"

	"github.com/kjkrol/instancegl/internal/platform"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	export := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return 0
		}
		return fibonacci(int32(args[0].Int()))
	})
	js.Global().Set("fibonacci", export)

	clock, err := platform.NewPerformanceClock()
	if err != nil {
		logger.Error("setup failed", "err", err)
		return
	}
	candidates := []candidate{{name: "go", fn: fibonacci}}
	if jsFib := js.Global().Get("jsFibonacci"); jsFib.Type() == js.TypeFunction {
		candidates = append([]candidate{{
			name: "js",
			fn:   func(n int32) int32 { return int32(jsFib.Invoke(n).Int()) },
		}}, candidates...)
	} else {
		logger.Warn("jsFibonacci not defined, timing go only")
	}

	results, _ := bench(clock, time.Second, benchInputs, candidates...)
	report(logger, results)
	select {}
}

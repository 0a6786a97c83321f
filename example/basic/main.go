// Example: ship records to a local ingestion stub.
package main

import (
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/logship/logship"
)

func main() {
	// Minimal ingestion stub: accept batches on /api/logs/batch with 201
	go func() {
		handler := func(ctx *fasthttp.RequestCtx) {
			if string(ctx.Path()) != "/api/logs/batch" {
				ctx.SetStatusCode(fasthttp.StatusNotFound)
				return
			}
			fmt.Printf("ingested batch: %s\n", ctx.PostBody())
			ctx.SetStatusCode(fasthttp.StatusCreated)
		}
		if err := fasthttp.ListenAndServe("127.0.0.1:9180", handler); err != nil {
			fmt.Printf("stub server error: %v\n", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	cfg := logship.DefaultConfig()
	cfg.FlushIntervalS = 2
	cfg.StorageDirectory = "./logship-data"
	cfg.PrintToConsole = true

	if err := logship.Init("http://127.0.0.1:9180", "demo-key", "example-app", cfg); err != nil {
		fmt.Printf("init failed: %v\n", err)
		return
	}
	defer logship.Shutdown()

	logship.Info("application started", map[string]any{"pid": 1234})
	logship.Debug("cache warmed", map[string]any{"entries": 512})
	logship.Warn("slow query", map[string]any{"duration_ms": 850})

	// An error-level record flushes immediately, ahead of the 2s tick
	logship.Error("payment gateway unreachable", map[string]any{"attempt": 1})

	time.Sleep(500 * time.Millisecond)

	if err := logship.Flush(5 * time.Second); err != nil {
		fmt.Printf("flush failed: %v\n", err)
	}

	stats := logship.GetStats()
	fmt.Printf("shipped=%d dropped=%d failures=%d\n", stats.Shipped, stats.Dropped, stats.FlushFailures)
}

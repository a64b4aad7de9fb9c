// Command loadtest churns a memcache engine with randomized short TTLs:
// it puts a batch of keys, then polls all of them from concurrent workers
// until every entry has expired.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/memcache-go/core/memcache"
)

func main() {
	var (
		numKeys    = flag.Int("keys", 1000, "number of keys to put")
		numWorkers = flag.Int("workers", 8, "number of polling goroutines")
		maxTTL     = flag.Duration("max-ttl", time.Second, "upper bound for randomized TTLs")
		buffer     = flag.Int("buffer", 256, "command mailbox size")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	e := memcache.New(memcache.Options{
		BufferSize: *buffer,
		Logger:     logger,
	})
	defer e.Close()

	ctx := context.Background()

	keys := make([]string, *numKeys)
	for i := range keys {
		keys[i] = gonanoid.Must(16)
		ttl := time.Duration(1+rand.Int63n(int64(*maxTTL/time.Millisecond)-1)) * time.Millisecond
		if err := e.Put(ctx, keys[i], int64(i), ttl); err != nil {
			logger.Error("put failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
	logger.Info("seeded", slog.Int("keys", *numKeys))

	var hits, misses, expired atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < *numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				remaining := 0
				for _, key := range keys {
					_, err := memcache.GetFrom[int64](ctx, e, key)
					switch {
					case err == nil:
						hits.Add(1)
						remaining++
					case errors.Is(err, memcache.ErrExpired):
						expired.Add(1)
					case errors.Is(err, memcache.ErrNoValue):
						misses.Add(1)
					default:
						logger.Error("get failed", slog.Any("error", err))
						return
					}
				}
				if remaining == 0 {
					return
				}
				time.Sleep(10 * time.Millisecond)
			}
		}()
	}
	wg.Wait()

	fmt.Printf("drained %d keys in %s: hits=%d expired=%d misses=%d\n",
		*numKeys, time.Since(start).Round(time.Millisecond),
		hits.Load(), expired.Load(), misses.Load())
}

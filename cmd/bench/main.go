// Command bench runs a synthetic workload against the cache and exposes
// optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IvanBrykalov/slabcache/cache"
	"github.com/IvanBrykalov/slabcache/hasher"
	pmet "github.com/IvanBrykalov/slabcache/metrics/prom"
	"github.com/IvanBrykalov/slabcache/policy/mru"
	"github.com/IvanBrykalov/slabcache/policy/twoq"
)

func main() {
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")
		shards   = flag.Int("shards", 0, "number of shards (0=auto)")
		policy   = flag.String("policy", "lru", "eviction policy: lru | mru | 2q")
		hashName = flag.String("hasher", hasher.Runtime, "key hasher: runtime | maphash | fnv | xxhash")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, config{
		capacity: *capacity, shards: *shards, policy: *policy, hasher: *hashName,
		workers: *workers, duration: *duration, readPct: *readPct,
		keys: *keys, zipfS: *zipfS, zipfV: *zipfV, seed: *seed, preload: *preload,
		pprofAddr: *pprofAddr, metricsAddr: *metricsAddr,
	}); err != nil {
		logger.Error("bench failed", slog.Any("err", err))
		os.Exit(1)
	}
}

type config struct {
	capacity, shards int
	policy, hasher   string

	workers  int
	duration time.Duration
	readPct  int

	keys         int
	zipfS, zipfV float64
	seed         int64
	preload      int

	pprofAddr, metricsAddr string
}

func run(logger *slog.Logger, cfg config) error {
	if cfg.capacity <= 0 || cfg.keys <= 1 {
		return fmt.Errorf("cap and keys must be positive (cap=%d keys=%d)", cfg.capacity, cfg.keys)
	}
	h, err := hasher.ByName[string](cfg.hasher)
	if err != nil {
		return err
	}

	// ---- pprof server (on DefaultServeMux) ----
	if cfg.pprofAddr != "" {
		go func() {
			logger.Info("pprof: serving", slog.String("addr", cfg.pprofAddr))
			logger.Warn("pprof: stopped", slog.Any("err", http.ListenAndServe(cfg.pprofAddr, nil)))
		}()
	}

	opt := cache.Options[string, string]{
		Capacity: cfg.capacity,
		Shards:   cfg.shards,
		Hasher:   h,
		Logger:   logger,
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	if cfg.metricsAddr != "" {
		opt.Metrics = pmet.New(nil, "slabcache", "bench", nil)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("metrics: serving", slog.String("addr", cfg.metricsAddr))
			logger.Warn("metrics: stopped", slog.Any("err", http.ListenAndServe(cfg.metricsAddr, nil)))
		}()
	}

	switch cfg.policy {
	case "lru":
		// nil => LRU by default
	case "mru":
		opt.Policy = mru.New[string, string]()
	case "2q":
		opt.Policy = twoq.New[string, string](0, 0)
	default:
		return fmt.Errorf("unknown policy %q (use lru, mru or 2q)", cfg.policy)
	}
	c := cache.New[string, string](opt)
	defer func() { _ = c.Close() }()

	// ---- Preload half capacity to get a realistic hit-rate ----
	pl := cfg.preload
	if pl == 0 {
		pl = cfg.capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Set("k:"+strconv.Itoa(i), "v"+strconv.Itoa(i))
	}

	workersN := max(cfg.workers, 1)
	keysMax := uint64(cfg.keys - 1)

	// ---- Load generation ----
	var reads, writes, hits, total atomic.Uint64
	ctx, cancel := context.WithTimeout(context.Background(), cfg.duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(cfg.seed + int64(id)*9973))
			zipf := rand.NewZipf(r, cfg.zipfS, cfg.zipfV, keysMax)
			key := func() string { return "k:" + strconv.FormatUint(zipf.Uint64(), 10) }

			for ctx.Err() == nil {
				total.Add(1)
				if int(r.Int31n(100)) < cfg.readPct {
					reads.Add(1)
					if _, ok := c.Get(key()); ok {
						hits.Add(1)
					}
				} else {
					writes.Add(1)
					c.Set(key(), "v"+strconv.Itoa(r.Int()))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	readsN, hitsN := reads.Load(), hits.Load()
	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}
	st := c.Stats()

	fmt.Printf("policy=%s hasher=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		cfg.policy, cfg.hasher, cfg.capacity, cfg.shards, workersN, cfg.keys, elapsed, cfg.seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		total.Load(), float64(total.Load())/elapsed.Seconds(), readsN, writes.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  evictions=%d\n", hitsN, readsN-hitsN, hitRate, st.Evictions)
	fmt.Printf("Len()=%d\n", c.Len())
	return nil
}

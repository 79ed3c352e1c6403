package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp"
	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/property"
)

func main() {
	cmd := &cli.Command{
		Name:  "wttp-loadtest",
		Usage: "Measure Site read and write latency against Redis",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "resources", Value: 10000, Usage: "number of resources to seed"},
			&cli.IntFlag{Name: "concurrency", Value: 256, Usage: "number of concurrent workers"},
			&cli.IntFlag{Name: "ops", Value: 200000, Usage: "operations per phase (head + write)"},
			&cli.StringFlag{Name: "redis-addr", Sources: cli.EnvVars(wttp.EnvRedisAddr), Usage: "redis address; miniredis when empty"},
			&cli.StringFlag{Name: "prefix", Value: "wttp-load", Usage: "store key prefix"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	resources := int(cmd.Int("resources"))
	concurrency := int(cmd.Int("concurrency"))
	ops := int(cmd.Int("ops"))
	if resources <= 0 || concurrency <= 0 || ops <= 0 {
		return cli.Exit("resources, concurrency, and ops must be > 0", 2)
	}

	addr := cmd.String("redis-addr")
	var cleanup func()
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start miniredis: %w", err)
		}
		addr = mr.Addr()
		cleanup = mr.Close
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		cleanup = func() {}
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	defer func() { _ = client.Close() }()

	cfg := wttp.DefaultConfig()
	cfg.Store.Backend = wttp.BackendRedis
	cfg.Store.Prefix = cmd.String("prefix")
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	site, err := wttp.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		return err
	}

	paths := make([]string, resources)
	fmt.Printf("seeding %d resources...\n", resources)
	startSeed := time.Now()
	for i := range paths {
		paths[i] = fmt.Sprintf("/r/%d.html", i)
		if _, err := site.Define(ctx, paths[i], header.PublicHeader); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	headStats := runPhase(concurrency, ops, 7919, func(r *rand.Rand, _ int) error {
		_, err := site.Head(ctx, paths[r.Intn(len(paths))])
		return err
	})

	metas := []property.Metadata{
		property.NewMetadata("text/html", "utf-8", "gzip", "en-US"),
		property.NewMetadata("application/json", "utf-8", "br", ""),
		property.NewMetadata("image/png", "", "identity", ""),
	}
	// Writers alternate Define and Describe on a hot subset to provoke
	// optimistic-lock retries.
	hot := paths[:min(len(paths), 64)]
	writeStats := runPhase(concurrency, ops, 6151, func(r *rand.Rand, i int) error {
		p := hot[r.Intn(len(hot))]
		if i%2 == 0 {
			_, err := site.Describe(ctx, p, metas[i%len(metas)])
			return err
		}
		_, err := site.Define(ctx, p, header.APIHeader)
		return err
	})

	fmt.Println("---- results ----")
	printStats("head", headStats)
	printStats("write", writeStats)

	snap := site.MetricsSnapshot()
	fmt.Printf("store errors=%d store latency buckets=%v\n",
		snap.Counters[wttp.MetricStoreError], snap.Histograms[wttp.MetricStoreLatency])
	return nil
}

func runPhase(concurrency, ops int, seed int64, op func(r *rand.Rand, i int) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*seed))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				err := op(r, i)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

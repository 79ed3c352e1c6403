//go:build integration
// +build integration

package test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/wttp"
	"github.com/MrEthical07/wttp/header"
)

// cmdCounter is a go-redis Hook that counts Redis commands and pipelines.
type cmdCounter struct {
	commands  atomic.Int64
	pipelines atomic.Int64
}

func (h *cmdCounter) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h *cmdCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.commands.Add(1)
		return next(ctx, cmd)
	}
}

func (h *cmdCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		// One pipeline is one network round-trip regardless of command count.
		h.pipelines.Add(1)
		h.commands.Add(int64(len(cmds)))
		return next(ctx, cmds)
	}
}

func (h *cmdCounter) Reset() {
	h.commands.Store(0)
	h.pipelines.Store(0)
}

func (h *cmdCounter) Commands() int64  { return h.commands.Load() }
func (h *cmdCounter) Pipelines() int64 { return h.pipelines.Load() }

func newCountedSite(t *testing.T) (*wttp.Site, *cmdCounter) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	counter := &cmdCounter{}
	rdb.AddHook(counter)
	// Warm the connection so handshake commands are not counted.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("warmup ping: %v", err)
	}
	counter.Reset()

	cfg := wttp.DefaultConfig()
	cfg.Store.Backend = wttp.BackendRedis
	site, err := wttp.New().WithConfig(cfg).WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return site, counter
}

// Head is the hot path: one GET.
func TestHeadRedisBudget(t *testing.T) {
	site, counter := newCountedSite(t)
	ctx := context.Background()

	if _, err := site.Define(ctx, "/index.html", header.PublicHeader); err != nil {
		t.Fatalf("define: %v", err)
	}
	counter.Reset()

	if _, err := site.Head(ctx, "/index.html"); err != nil {
		t.Fatalf("head: %v", err)
	}
	if cmds := counter.Commands(); cmds != 1 {
		t.Errorf("Head used %d Redis commands; budget is 1 (GET)", cmds)
	}
}

// An uncontended Define is WATCH, GET, the MULTI/EXEC pipeline and UNWATCH.
func TestDefineRedisBudget(t *testing.T) {
	site, counter := newCountedSite(t)
	ctx := context.Background()

	if _, err := site.Define(ctx, "/index.html", header.PublicHeader); err != nil {
		t.Fatalf("define: %v", err)
	}
	if pipes := counter.Pipelines(); pipes != 1 {
		t.Errorf("Define used %d pipelines; budget is 1 (MULTI/EXEC)", pipes)
	}
	t.Logf("Define: %d commands, %d pipelines", counter.Commands(), counter.Pipelines())
}

func TestDeleteRedisBudget(t *testing.T) {
	site, counter := newCountedSite(t)
	ctx := context.Background()

	if err := site.Delete(ctx, "/gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if pipes := counter.Pipelines(); pipes != 1 {
		t.Errorf("Delete used %d pipelines; budget is 1", pipes)
	}
}

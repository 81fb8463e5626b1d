package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder captures hook events as strings.
type recorder struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks

	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) OnLayoutComplete(_ context.Context, _ float64, _ time.Duration, err error) {
	if err != nil {
		r.add("layout:error")
		return
	}
	r.add("layout")
}

func (r *recorder) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	r.add("render:" + format)
}

func (r *recorder) OnCacheHit(context.Context, string) { r.add("hit") }

func (r *recorder) OnResponse(_ context.Context, _, path string, status int, _ time.Duration) {
	r.add(path)
}

func TestNoopHooks(t *testing.T) {
	ctx := context.Background()

	var p PipelineHooks = NoopPipelineHooks{}
	p.OnLayoutStart(ctx, 250)
	p.OnLayoutComplete(ctx, 250, time.Millisecond, errors.New("exhausted"))
	p.OnRenderStart(ctx, "png")
	p.OnRenderComplete(ctx, "png", 4096, time.Millisecond, nil)

	var c CacheHooks = NoopCacheHooks{}
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	var h HTTPHooks = NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/metrics")
	h.OnError(ctx, "GET", "/flag.gif", errors.New("invalid format"))
}

func TestRegistryDefaultsAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	rec := &recorder{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetHTTPHooks(rec)

	ctx := context.Background()
	Pipeline().OnLayoutComplete(ctx, 250, 0, nil)
	Pipeline().OnLayoutComplete(ctx, 0.001, 0, errors.New("exhausted"))
	Pipeline().OnRenderComplete(ctx, "svg", 10, 0, nil)
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnResponse(ctx, "GET", "/flag.svg", 200, 0)

	want := []string{"layout", "layout:error", "render:svg", "hit", "/flag.svg"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, rec.events[i], want[i])
		}
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recorder{}
	SetHTTPHooks(rec)
	SetHTTPHooks(nil)
	if HTTP() != rec {
		t.Error("SetHTTPHooks(nil) replaced the installed hooks")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recorder{}
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(rec)
			}
			Cache().OnCacheHit(context.Background(), "artifact")
		}()
	}
	wg.Wait()

	if Cache() != rec {
		t.Error("recorder should be installed after concurrent sets")
	}
}

package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oldglory/pkg/observability"
)

// logHooks reports pipeline, cache and HTTP events to the request logger,
// falling back to the server logger outside a request.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) log(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.logger
}

func (h logHooks) OnLayoutStart(ctx context.Context, width float64) {
	h.log(ctx).Debug("layout start", "width", width)
}

func (h logHooks) OnLayoutComplete(ctx context.Context, width float64, d time.Duration, err error) {
	if err != nil {
		h.log(ctx).Warn("layout failed", "width", width, "error", err)
		return
	}
	h.log(ctx).Debug("layout done", "width", width, "duration", d)
}

func (h logHooks) OnRenderStart(ctx context.Context, format string) {
	h.log(ctx).Debug("render start", "format", format)
}

func (h logHooks) OnRenderComplete(ctx context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.log(ctx).Warn("render failed", "format", format, "error", err)
		return
	}
	h.log(ctx).Debug("render done", "format", format, "bytes", size, "duration", d)
}

func (h logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.log(ctx).Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.log(ctx).Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(ctx context.Context, method, path string) {
	h.log(ctx).Debug("request", "method", method, "path", path)
}

func (h logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	h.log(ctx).Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(ctx context.Context, method, path string, err error) {
	h.log(ctx).Debug("request error", "method", method, "path", path, "error", err)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)

package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oldglory/pkg/buildinfo"
	"github.com/matzehuels/oldglory/pkg/cache"
	"github.com/matzehuels/oldglory/pkg/errors"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newServer(testRunner(t, c), log.New(&bytes.Buffer{})).routes())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv.URL+"/healthz")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var info buildinfo.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != buildinfo.Version {
		t.Errorf("version = %q, want %q", info.Version, buildinfo.Version)
	}
}

func TestServeFlag(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path        string
		contentType string
		prefix      string
	}{
		{"/flag.svg", "image/svg+xml", "<svg"},
		{"/flag.SVG", "image/svg+xml", "<svg"},
		{"/flag.Json?width=190", "application/json", "{"},
		{"/flag.svg?width=500&palette=primary&grid=true", "image/svg+xml", "<svg"},
		{"/flag.png?width=100&scale=1", "image/png", "\x89PNG"},
		{"/flag.bmp?width=100&scale=1", "image/bmp", "BM"},
		{"/flag.json?width=190", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			var body bytes.Buffer
			if _, err := body.ReadFrom(resp.Body); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(body.String(), tt.prefix) {
				t.Errorf("body starts with %q, want %q", body.String()[:min(body.Len(), 8)], tt.prefix)
			}
		})
	}
}

func TestServeFlagErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/flag.svg?width=0", http.StatusBadRequest, errors.ErrCodeInvalidWidth},
		{"/flag.svg?width=-5", http.StatusBadRequest, errors.ErrCodeInvalidWidth},
		{"/flag.svg?width=wide", http.StatusBadRequest, errors.ErrCodeInvalidWidth},
		{"/flag.gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/flag.svg?palette=sepia", http.StatusBadRequest, errors.ErrCodeInvalidPalette},
		{"/flag.png?scale=-1", http.StatusBadRequest, errors.ErrCodeInvalidScale},
		{"/flag.svg?grid=maybe", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/metrics?width=NaN", http.StatusBadRequest, errors.ErrCodeInvalidWidth},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestServeNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	if resp := get(t, srv.URL+"/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeCacheHeader(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, fc)

	if got := get(t, srv.URL+"/flag.svg?width=300").Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := get(t, srv.URL+"/flag.svg?width=300").Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestServeMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	resp := get(t, srv.URL+"/metrics?width=250")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var m metricsJSON
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Width != 250 || len(m.Points) != 50 {
		t.Errorf("width=%v points=%d, want 250 and 50", m.Width, len(m.Points))
	}
	if m.Metrics.CantonWidth < 99.99 || m.Metrics.CantonWidth > 100.01 {
		t.Errorf("canton width = %v, want 100", m.Metrics.CantonWidth)
	}
}

func TestServeRequestID(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := get(t, srv.URL+"/healthz")
	if id := resp.Header.Get(headerRequestID); len(id) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", id)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(headerRequestID, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if id := resp.Header.Get(headerRequestID); id != "abc-123" {
		t.Errorf("request ID = %q, want the client's", id)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidWidth, "w"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeAssetNotFound, "a"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "u"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeLayoutExhausted, "l"), http.StatusInternalServerError},
		{http.ErrHandlerTimeout, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oldglory/pkg/buildinfo"
	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/observability"
	"github.com/matzehuels/oldglory/pkg/pipeline"
)

// headerRequestID carries the request ID in both directions.
const headerRequestID = "X-Request-ID"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered flags over HTTP",
		Long: `Serve renders flags on demand.

  GET /flag.{svg,png,bmp,pdf,json}?width=&palette=&scale=&grid=
  GET /metrics?width=
  GET /healthz

Artifacts are cached in the file cache, or in Redis with --redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			if cmd.Flags().Changed("redis") {
				c.Config.Cache.RedisAddr = redisAddr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetPipelineHooks(logHooks{c.Logger})
			observability.SetCacheHooks(logHooks{c.Logger})
			observability.SetHTTPHooks(logHooks{c.Logger})
			defer observability.Reset()

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(runner, c.Logger).routes(),
				ReadHeaderTimeout: c.Config.Serve.ReadTimeout.Duration,
				ReadTimeout:       c.Config.Serve.ReadTimeout.Duration,
			}
			return runServer(cmd.Context(), srv, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// =============================================================================
// Server
// =============================================================================

// server holds the handlers' shared state.
type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/flag.{format}", s.handleFlag)

	return r
}

// requestID tags each request with an ID, reusing the client's if present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests attaches a request-scoped logger and reports every request to
// the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("request_id", w.Header().Get(headerRequestID))
		ctx := withLogger(r.Context(), logger)
		r = r.WithContext(ctx)

		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	width, err := queryFloat(r, "width", pipeline.DefaultWidth, errors.ErrCodeInvalidWidth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := layout.Compose(width)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMetricsJSON(f))
}

func (s *server) handleFlag(w http.ResponseWriter, r *http.Request) {
	opts, err := flagOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = loggerFromContext(r.Context())
	// Formats are lowercased here; the artifact lookup below relies on it.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "MISS"
	if result.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	data := result.Artifacts[format]

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// flagOptions reads the pipeline options for /flag.{format} from the URL.
func flagOptions(r *http.Request) (pipeline.Options, error) {
	width, err := queryFloat(r, "width", pipeline.DefaultWidth, errors.ErrCodeInvalidWidth)
	if err != nil {
		return pipeline.Options{}, err
	}
	scale, err := queryFloat(r, "scale", pipeline.DefaultScale, errors.ErrCodeInvalidScale)
	if err != nil {
		return pipeline.Options{}, err
	}
	grid, err := queryBool(r, "grid")
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Width:   width,
		Formats: []string{chi.URLParam(r, "format")},
		Palette: r.URL.Query().Get("palette"),
		Scale:   scale,
		Grid:    grid,
	}, nil
}

func queryFloat(r *http.Request, name string, def float64, code errors.Code) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(code, "%s must be a number, got %q", name, s)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, s)
	}
	return v, nil
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

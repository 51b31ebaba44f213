package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/cache"
	"github.com/planrect/planrect/pkg/constraint"
	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/floorplan"
	"github.com/planrect/planrect/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	backend    string // cache backend: file, redis, mongo, none
	redisURL   string
	mongoURI   string
	mongoDB    string
	maxTimeout time.Duration // per-request solve time cap
}

// serveCommand creates the serve command, which exposes the solver over
// HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       ":8080",
		backend:    "file",
		redisURL:   "redis://localhost:6379/0",
		mongoURI:   "mongodb://localhost:27017",
		mongoDB:    "planrect",
		maxTimeout: 30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", opts.backend, "cache backend: file (default), redis, mongo, none")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", opts.redisURL, "redis URL for --cache=redis")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "mongodb URI for --cache=mongo")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongodb database for --cache=mongo")
	cmd.Flags().DurationVar(&opts.maxTimeout, "max-timeout", opts.maxTimeout, "per-request solve time cap")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := &server{
		runner:     runner,
		logger:     c.Logger,
		maxTimeout: opts.maxTimeout,
	}
	httpSrv := &http.Server{
		Addr:    opts.addr,
		Handler: srv.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr, "cache", opts.backend)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.backend {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(opts.redisURL)
	case "mongo":
		return cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB, "results")
	default:
		return nil, fmt.Errorf("invalid cache backend: %s (must be 'file', 'redis', 'mongo', or 'none')", opts.backend)
	}
}

// server is the HTTP API. Solves run through the shared pipeline runner,
// so the cache behaves the same as in the CLI.
type server struct {
	runner     *pipeline.Runner
	logger     *log.Logger
	maxTimeout time.Duration
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/grammar", s.handleGrammar)
	r.Post("/api/solve", s.handleSolve)

	return r
}

// requestID tags every request with a UUID and logs it on completion.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		logger := s.logger.With("request_id", id)

		start := time.Now()
		next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), logger)))
		logger.Debug("request",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGrammar(w http.ResponseWriter, req *http.Request) {
	type entry struct {
		Kind string `json:"kind"`
		Form string `json:"form"`
	}
	out := make([]entry, 0, len(constraint.Kinds()))
	for _, k := range constraint.Kinds() {
		form, _ := constraint.Form(k)
		out = append(out, entry{Kind: string(k), Form: form})
	}
	writeJSON(w, http.StatusOK, out)
}

// solveRequest is the POST /api/solve body.
type solveRequest struct {
	Boxes          int                    `json:"boxes"`
	Padding        float64                `json:"padding"`
	Constraints    []floorplan.Constraint `json:"constraints"`
	TimeoutSeconds float64                `json:"timeout_seconds"`
}

// solveResponse wraps a successful solve.
type solveResponse struct {
	Result *floorplan.Result `json:"result"`
	Cached bool              `json:"cached"`
}

func (s *server) handleSolve(w http.ResponseWriter, req *http.Request) {
	var body solveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidFormat, "invalid JSON body")
		return
	}

	timeout := s.maxTimeout
	if body.TimeoutSeconds > 0 {
		if d := time.Duration(body.TimeoutSeconds * float64(time.Second)); d < timeout {
			timeout = d
		}
	}
	p := floorplan.Problem{
		Boxes:       body.Boxes,
		Padding:     body.Padding,
		Constraints: body.Constraints,
		TimeLimit:   timeout,
	}

	res, cached, err := s.runner.SolveWithCacheInfo(req.Context(), p)
	if err != nil {
		code := errors.GetCode(err)
		switch code {
		case errors.ErrCodeInvalidConstraint, errors.ErrCodeUnknownKind,
			errors.ErrCodeIndexOutOfRange, errors.ErrCodeInvalidProblem,
			errors.ErrCodeInvalidFormat:
			writeError(w, http.StatusBadRequest, code, errors.UserMessage(err))
		case errors.ErrCodeInfeasible, errors.ErrCodeUnbounded, errors.ErrCodeNoSolution:
			writeError(w, http.StatusUnprocessableEntity, code, errors.UserMessage(err))
		default:
			loggerFromContext(req.Context()).Error("solve failed", "err", err)
			writeError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, solveResponse{Result: res, Cached: cached})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code errors.Code, msg string) {
	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = msg
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

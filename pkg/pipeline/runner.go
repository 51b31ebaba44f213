// Package pipeline runs floor-plan solves with result caching. The CLI and
// the HTTP server both go through a Runner so caching behaves identically
// in both.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planrect/planrect/pkg/cache"
	"github.com/planrect/planrect/pkg/floorplan"
)

// Runner solves problems through a cache. It is stateless apart from the
// cache and logger; one Runner can serve concurrent solves.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Progress is forwarded to the solver.
	Progress func(explored, pruned int, best float64)
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the default key layout, a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// fingerprint identifies a problem for caching. The time limit is left out
// on purpose: it cannot change an optimal layout, and only optimal results
// are cached.
func fingerprint(p floorplan.Problem) (string, error) {
	data, err := json.Marshal(struct {
		Boxes       int                    `json:"boxes"`
		Padding     float64                `json:"padding"`
		Constraints []floorplan.Constraint `json:"constraints"`
	}{p.Boxes, p.Padding, p.Constraints})
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// SolveWithCacheInfo solves the problem, serving and populating the cache,
// and reports whether the result came from the cache.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, p floorplan.Problem) (*floorplan.Result, bool, error) {
	hash, err := fingerprint(p)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ResultKey(hash)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if res, err := floorplan.ReadResult(bytes.NewReader(data)); err == nil {
			r.Logger.Debug("cache hit", "key", key)
			return res, true, nil
		}
		// Unreadable entry, recompute and overwrite.
		_ = r.Cache.Delete(ctx, key)
	}

	start := time.Now()
	solver := floorplan.Solver{Logger: r.Logger, Progress: r.Progress}
	res, err := solver.Solve(ctx, p)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("solved floor plan",
		"boxes", p.Boxes,
		"status", res.Status,
		"perimeter", res.Perimeter,
		"duration", time.Since(start))

	// Only proven-optimal results are cached; a rerun with a longer time
	// limit may beat a feasible incumbent.
	if res.Status == floorplan.StatusOptimal {
		var buf bytes.Buffer
		if err := floorplan.WriteResult(&buf, res); err == nil {
			_ = r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLResult)
		}
	}
	return res, false, nil
}

// Solve is SolveWithCacheInfo without the cache hit flag.
func (r *Runner) Solve(ctx context.Context, p floorplan.Problem) (*floorplan.Result, error) {
	res, _, err := r.SolveWithCacheInfo(ctx, p)
	return res, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

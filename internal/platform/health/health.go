package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check names one dependency probe.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Liveness reports the process is up.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// Readiness probes all configured dependencies in parallel and reports 503 if
// any of them is unreachable.
func Readiness(timeout time.Duration, checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		failed := make([]string, 0)
		g, gctx := errgroup.WithContext(ctx)
		results := make(chan string, len(checks))
		for _, c := range checks {
			g.Go(func() error {
				if err := c.Probe(gctx); err != nil {
					results <- c.Name
				}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
		for name := range results {
			failed = append(failed, name)
		}

		w.Header().Set("Content-Type", "application/json")
		if len(failed) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "degraded", "failed": failed})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

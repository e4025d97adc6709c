package mid

import (
	"context"
	"expvar"
	"net/http"
	"runtime"

	"github.com/minichain/minichain/foundation/web"
)

// counters represents the set of request counters published on the debug
// endpoint. They are expvar based so /debug/vars exposes them for free.
type counters struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
}

func (c *counters) addPanics() {
	c.panics.Add(1)
}

var metrics = counters{
	goroutines: expvar.NewInt("goroutines"),
	requests:   expvar.NewInt("requests"),
	errors:     expvar.NewInt("errors"),
	panics:     expvar.NewInt("panics"),
}

// Metrics updates the request counters for every request.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			err := handler(ctx, w, r)

			metrics.requests.Add(1)
			if err != nil {
				metrics.errors.Add(1)
			}

			// Capture the goroutine count on a sampling of requests.
			if metrics.requests.Value()%100 == 0 {
				metrics.goroutines.Set(int64(runtime.NumGoroutine()))
			}

			return err
		}

		return h
	}

	return m
}

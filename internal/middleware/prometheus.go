package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/pkg/router"
	"github.com/spinmall/backend/pkg/xcontext"
)

// Prometheus records request counts and latencies per path and method.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		code := strconv.Itoa(responseCode(xcontext.Error(ctx)))
		common.PromCounters[common.PromHTTPRequestTotal].
			WithLabelValues(req.URL.Path, req.Method, code).Inc()

		latency := time.Since(xcontext.StartTime(ctx))
		common.PromHistograms[common.PromHTTPRequestDuration].
			WithLabelValues(req.URL.Path, req.Method).Observe(latency.Seconds())
	}
}

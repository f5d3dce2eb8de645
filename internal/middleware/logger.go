package middleware

import (
	"context"
	"time"

	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/router"
	"github.com/spinmall/backend/pkg/xcontext"
)

// Logger writes one line per request once the response has been sent.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		latency := time.Since(xcontext.StartTime(ctx))
		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s | %v | %s",
				req.Method, req.URL.Path, err, latency)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s | ok | %s", req.Method, req.URL.Path, latency)
	}
}

func responseCode(err error) int {
	if err == nil {
		return 0
	}

	if xerr, ok := err.(errorx.Error); ok {
		return int(xerr.Code)
	}

	return int(errorx.Unknown.Code)
}

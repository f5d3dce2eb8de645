package domain

import (
	"context"

	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
)

func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer

	if offset < 0 || limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Invalid offset or limit")
	}

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.MaxLimit)
	}

	return offset, limit, nil
}

func clientIP(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	return req.RemoteAddr
}

func userAgent(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	return req.UserAgent()
}

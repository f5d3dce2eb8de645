package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spinmall/backend/pkg/xcontext"
)

// HandlerFunc is the shape of every endpoint. The request is already bound
// from the query string or json body when the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler and may enrich or reject the context.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, regardless of outcome. The
// handler's result is available through xcontext.Error and xcontext.Response.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *gin.Engine
	ctx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers all derive from the given base context.
// The base context is expected to carry configs, logger, database handle, and
// token engine.
func New(ctx context.Context) *Router {
	if xcontext.Configs(ctx).Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	mux := gin.New()
	mux.Use(gin.Recovery())

	return &Router{mux: mux, ctx: ctx}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so a group of routes can add auth without affecting the
// public ones.
func (r *Router) Branch() *Router {
	clone := &Router{mux: r.mux, ctx: r.ctx}
	clone.befores = append(clone.befores, r.befores...)
	clone.afters = append(clone.afters, r.afters...)
	clone.closers = append(clone.closers, r.closers...)

	return clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// GETHandler mounts a plain http.Handler, used for things like the metrics
// endpoint that do not speak the response envelope.
func (r *Router) GETHandler(path string, h http.Handler) {
	r.mux.GET(path, gin.WrapH(h))
}

func GET[Request, Response any](r *Router, path string, handler HandlerFunc[Request, Response]) {
	r.mux.GET(path, route(r, handler))
}

func POST[Request, Response any](r *Router, path string, handler HandlerFunc[Request, Response]) {
	r.mux.POST(path, route(r, handler))
}

func route[Request, Response any](r *Router, handler HandlerFunc[Request, Response]) gin.HandlerFunc {
	befores := make([]MiddlewareFunc, len(r.befores))
	copy(befores, r.befores)
	afters := make([]MiddlewareFunc, len(r.afters))
	copy(afters, r.afters)
	closers := make([]CloserFunc, len(r.closers))
	copy(closers, r.closers)

	return func(gctx *gin.Context) {
		ctx := xcontext.WithHTTPRequest(r.ctx, gctx.Request)
		ctx = xcontext.WithStartTime(ctx, time.Now())
		ctx = xcontext.WithErrorBox(ctx)
		ctx = xcontext.WithResponseBox(ctx)
		ctx = resolveRequestUser(ctx, gctx)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		for _, m := range befores {
			next, err := m(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				writeResponse(gctx, nil, err)
				return
			}

			ctx = next
		}

		var req Request
		if err := bindRequest(gctx, &req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind request: %v", err)
			err = badRequest()
			xcontext.SetError(ctx, err)
			writeResponse(gctx, nil, err)
			return
		}

		resp, err := handler(ctx, &req)
		xcontext.SetError(ctx, err)
		xcontext.SetResponse(ctx, resp)

		for _, m := range afters {
			next, err := m(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				writeResponse(gctx, nil, err)
				return
			}

			ctx = next
		}

		writeResponse(gctx, resp, xcontext.Error(ctx))
	}
}

func bindRequest(gctx *gin.Context, req any) error {
	if gctx.Request.Method == http.MethodGet {
		return gctx.ShouldBindQuery(req)
	}

	if gctx.Request.ContentLength == 0 {
		return nil
	}

	return gctx.ShouldBindJSON(req)
}

// resolveRequestUser extracts the access token from the bearer header or the
// token cookie. A missing or invalid token leaves the user id empty; the auth
// middleware decides whether that is acceptable for the route.
func resolveRequestUser(ctx context.Context, gctx *gin.Context) context.Context {
	engine := xcontext.TokenEngine(ctx)
	if engine == nil {
		return ctx
	}

	token := ""
	if authorization := gctx.GetHeader("Authorization"); authorization != "" {
		token = strings.TrimPrefix(authorization, "Bearer ")
	} else {
		cookieName := xcontext.Configs(ctx).Auth.AccessToken.Name
		if cookie, err := gctx.Cookie(cookieName); err == nil {
			token = cookie
		}
	}

	if token == "" {
		return ctx
	}

	info, err := engine.Verify(token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ctx
	}

	return xcontext.WithRequestUserID(ctx, info.ID)
}

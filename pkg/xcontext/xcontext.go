package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/spinmall/backend/config"
	"github.com/spinmall/backend/internal/model"
	"github.com/spinmall/backend/pkg/authenticator"
	"github.com/spinmall/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	tokenEngineKey struct{}
	userIDKey      struct{}
	httpRequestKey struct{}
	startTimeKey   struct{}
	errorKey       struct{}
	responseKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Configs{}
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.ERROR)
	}

	return l
}

func WithTokenEngine(
	ctx context.Context, engine authenticator.TokenEngine[model.AccessToken],
) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	engine, ok := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
	if !ok {
		return nil
	}

	return engine
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// dbTransaction is stored by pointer so that commit and rollback observe each
// other across the derived contexts the transaction flows through.
type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// DB returns the current database handle. Inside a transaction opened by
// WithDBTransaction it returns the transaction, so repositories transparently
// join the caller's unit of work.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.done {
		return t.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

// WithDBTransaction begins a transaction on the current handle. The usual
// pattern is to defer WithRollbackDBTransaction right after this call; the
// rollback becomes a no-op once WithCommitDBTransaction has run.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Commit()
		t.done = true
	}

	return ctx
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Rollback()
		t.done = true
	}

	return ctx
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok {
		return time.Time{}
	}

	return t
}

type errorBox struct{ err error }

type responseBox struct{ resp any }

// WithErrorBox and WithResponseBox install mutable slots so that closer
// middlewares running after the handler can observe its outcome.
func WithErrorBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorBox{})
}

func SetError(ctx context.Context, err error) {
	if box, ok := ctx.Value(errorKey{}).(*errorBox); ok {
		box.err = err
	}
}

func Error(ctx context.Context) error {
	if box, ok := ctx.Value(errorKey{}).(*errorBox); ok {
		return box.err
	}

	return nil
}

func WithResponseBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseKey{}, &responseBox{})
}

func SetResponse(ctx context.Context, resp any) {
	if box, ok := ctx.Value(responseKey{}).(*responseBox); ok {
		box.resp = resp
	}
}

func Response(ctx context.Context) any {
	if box, ok := ctx.Value(responseKey{}).(*responseBox); ok {
		return box.resp
	}

	return nil
}

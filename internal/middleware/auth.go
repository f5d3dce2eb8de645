package middleware

import (
	"context"

	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/router"
	"github.com/spinmall/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (v *AuthVerifier) WithAccessToken() *AuthVerifier {
	v.useAccessToken = true
	return v
}

func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if v.useAccessToken && xcontext.RequestUserID(ctx) != "" {
			return ctx, nil
		}

		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}
}

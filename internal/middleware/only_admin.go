package middleware

import (
	"context"

	"github.com/spinmall/backend/internal/common"
	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/router"
)

// MustAdmin rejects the request unless the authenticated user holds a global
// admin role.
func MustAdmin(userRepo repository.UserRepository) router.MiddlewareFunc {
	verifier := common.NewGlobalRoleVerifier(userRepo, entity.GlobalAdminRoles...)

	return func(ctx context.Context) (context.Context, error) {
		if err := verifier.Verify(ctx); err != nil {
			return nil, err
		}

		return ctx, nil
	}
}

package common

import (
	"context"

	"github.com/spinmall/backend/internal/entity"
	"github.com/spinmall/backend/internal/repository"
	"github.com/spinmall/backend/pkg/errorx"
	"github.com/spinmall/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo      repository.UserRepository
	acceptedRoles []entity.GlobalRole
}

func NewGlobalRoleVerifier(
	userRepo repository.UserRepository, acceptedRoles ...entity.GlobalRole,
) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo, acceptedRoles: acceptedRoles}
}

func (v *GlobalRoleVerifier) Verify(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Not authenticated yet")
	}

	user, err := v.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	if !slices.Contains(v.acceptedRoles, user.Role) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

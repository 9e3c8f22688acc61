package common

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.Role) error {
	userID := xcontext.RequestUserID(ctx)
	user, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, role := range requiredRoles {
		if user.Role == role {
			return nil
		}
	}

	return errors.New("user role does not have permission")
}

package domain

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/common"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUsers(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{
		userRepo:     userRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

// GetMe returns the profile row of the requesting user. A missing row is
// repaired from the verified token claims instead of failing the boot.
func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err == nil {
		return &model.GetMeResponse{User: ConvertUser(user)}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	claims := xcontext.TokenClaims(ctx)
	if claims == nil || claims.ID != userID {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	user = &entity.User{
		Base:  entity.Base{ID: claims.ID},
		Email: claims.Email,
		Name:  claims.Name,
		Role:  entity.RoleTraveler,
	}

	if claims.Email != "" && claims.Email == xcontext.Configs(ctx).Auth.AdminEmail {
		user.Role = entity.RoleAdmin
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot repair user profile: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: ConvertUser(user)}, nil
}

func (d *userDomain) GetUsers(ctx context.Context, req *model.GetUsersRequest) (*model.GetUsersResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	users, err := d.userRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetUsersResponse{}
	for i := range users {
		resp.Users = append(resp.Users, ConvertUser(&users[i]))
	}

	return resp, nil
}

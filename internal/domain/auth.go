package domain

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/authenticator"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/session"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
	Logout(ctx context.Context) error
}

type authDomain struct {
	userRepo      repository.UserRepository
	oauth2Service authenticator.IOAuth2Service
	sessions      *session.Manager
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	oauth2Service authenticator.IOAuth2Service,
	sessions *session.Manager,
) *authDomain {
	return &authDomain{
		userRepo:      userRepo,
		oauth2Service: oauth2Service,
		sessions:      sessions,
	}
}

func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	identity, err := d.oauth2Service.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify id token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid token")
	}

	user, err := d.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		// An authenticated identity without a profile row gets one on the
		// fly, so a half-finished signup never wedges the login.
		user = &entity.User{
			Base:  entity.Base{ID: identity.ID},
			Email: identity.Email,
			Name:  identity.Name,
			Role:  entity.RoleTraveler,
		}

		if identity.Email != "" && identity.Email == xcontext.Configs(ctx).Auth.AdminEmail {
			user.Role = entity.RoleAdmin
		}

		if err := d.userRepo.Create(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	err = d.sessions.SignIn(ctx, &session.Session{
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: token,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist session: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        ConvertUser(user),
	}, nil
}

// Refresh re-issues the access token of the current session from the profile
// row, so a role change picked up here lands in the new claims.
func (d *authDomain) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error) {
	sess := d.sessions.Current()
	if sess == nil {
		return nil, errorx.New(errorx.Unauthenticated, "No session to refresh")
	}

	user, err := d.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.sessions.Refresh(ctx, token); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist refreshed session: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{AccessToken: token}, nil
}

func (d *authDomain) Logout(ctx context.Context) error {
	if err := d.sessions.SignOut(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot clear session: %v", err)
		return errorx.Unknown
	}

	return nil
}

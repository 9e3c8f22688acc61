package authenticator

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aqeel98/sidequest-travel-app-sub000/config"
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type oauth2Service struct {
	provider *oidc.Provider
	cfg      config.OAuth2Config
	oauth2   oauth2.Config
}

func NewOAuth2Service(ctx context.Context, cfg config.OAuth2Config) (IOAuth2Service, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	return &oauth2Service{
		provider: provider,
		cfg:      cfg,
		oauth2: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

func (s *oauth2Service) Service() string {
	return s.cfg.Name
}

// VerifyIDToken verifies a raw id token the application obtained from the
// provider and extracts the identity claims.
func (s *oauth2Service) VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error) {
	idToken, err := s.provider.Verifier(&oidc.Config{ClientID: s.cfg.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return OAuth2User{}, err
	}

	var profile map[string]any
	if err := idToken.Claims(&profile); err != nil {
		return OAuth2User{}, errors.New("invalid id token")
	}

	id, ok := profile[s.cfg.IDField].(string)
	if !ok {
		return OAuth2User{}, fmt.Errorf("invalid id field %s", s.cfg.IDField)
	}

	user := OAuth2User{ID: fmt.Sprintf("%s_%s", s.cfg.Name, id)}
	user.Email, _ = profile["email"].(string)
	user.Name, _ = profile["name"].(string)

	return user, nil
}

func (s *oauth2Service) VerifyAuthorizationCode(
	ctx context.Context, code, redirectURI string,
) (OAuth2User, error) {
	cfg := s.oauth2
	cfg.RedirectURL = redirectURI

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return OAuth2User{}, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return OAuth2User{}, errors.New("no id_token field in oauth2 token")
	}

	return s.VerifyIDToken(ctx, rawIDToken)
}

package authenticator

import "context"

type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}

// OAuth2User is the identity the external provider vouches for.
type OAuth2User struct {
	ID    string
	Email string
	Name  string
}

type IOAuth2Service interface {
	Service() string
	VerifyIDToken(ctx context.Context, rawIDToken string) (OAuth2User, error)
	VerifyAuthorizationCode(ctx context.Context, code, redirectURI string) (OAuth2User, error)
}

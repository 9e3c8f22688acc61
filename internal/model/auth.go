package model

type LoginRequest struct {
	IDToken string `json:"id_token"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type RefreshTokenRequest struct{}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type GetUsersRequest struct{}

type GetUsersResponse struct {
	Users []User `json:"users"`
}

package dto

type TokenRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

package dto

type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type DevSignInRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

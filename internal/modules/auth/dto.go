package auth

import "fdrs/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	NewUsername string `json:"new_username"`
	NewEmail    string `json:"new_email"`
}

// ProfileResponse is the portal profile page: the account plus everything
// it submitted and bookmarked.
type ProfileResponse struct {
	User      *domain.User      `json:"user"`
	Resources []domain.Resource `json:"resources"`
	Favorites []domain.Favorite `json:"favorites"`
}

package controllers

import (
	"net/http"

	"storefront/response"
	"storefront/services"
)

// UserController handles login and credential changes
type UserController struct {
	auth *services.AuthService
}

// NewUserController creates a new UserController
func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login handles user login
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	result, err := uc.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{
		"user": response.M{
			"id":      result.User.ID,
			"email":   result.User.Email,
			"name":    result.User.Name,
			"isAdmin": result.User.IsAdmin,
		},
		"token": result.Token,
	})
}

// ChangePassword updates the admin password
func (uc *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		response.FromError(w, err)
		return
	}

	ctx, cancel := withTimeout(r)
	defer cancel()

	if err := uc.auth.ChangePassword(ctx, req.Email, req.CurrentPassword, req.NewPassword); err != nil {
		response.FromError(w, err)
		return
	}
	response.OK(w, response.M{"message": "Password updated successfully"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/application/port"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/internal/interface/middleware"
	"github.com/oksasatya/go-identity-backend/pkg/clock"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
	"github.com/oksasatya/go-identity-backend/pkg/response"
	"github.com/oksasatya/go-identity-backend/pkg/validation"
)

type AuthHandler struct {
	Register       command.Handler[command.RegisterUser, command.RegisterUserResult]
	Login          command.Handler[command.AuthenticateLocalUser, command.AuthenticateLocalUserResult]
	ChangePassword command.Handler[command.ChangeLocalPassword, command.ChangeLocalPasswordResult]
	Cookies        *helpers.Manager
	TTL            command.TokenTTL
	Clock          clock.Clock
	Logger         logrus.FieldLogger
	// UniformErrors collapses the credential failures into one "invalid credentials" response.
	UniformErrors bool
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd,nefield=CurrentPassword"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	AuthType string `json:"auth_type,omitempty"`
}

// RegisterUser POST /api/auth/register
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Register.Execute(c.Request.Context(), command.RegisterUser{
		Username:      req.Username,
		Email:         req.Email,
		PlainPassword: req.Password,
	})
	if err != nil {
		h.writeError(c, err, "password")
		return
	}
	response.Success(c, http.StatusCreated, userResponse{
		ID:       res.ID.String(),
		Username: res.Username,
		Email:    res.Email,
		AuthType: res.AuthType.String(),
	}, "user registered", nil)
}

// AuthenticateLocalUser POST /api/auth/login
func (h *AuthHandler) AuthenticateLocalUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Login.Execute(c.Request.Context(), command.AuthenticateLocalUser{
		Username:      req.Username,
		PlainPassword: req.Password,
	})
	if err != nil {
		h.writeError(c, err, "password")
		return
	}

	now := h.Clock.Now()
	accessExp := now.Add(h.TTL.Access)
	refreshExp := now.Add(h.TTL.Refresh)
	refresh := ""
	if res.RefreshToken != nil {
		refresh = *res.RefreshToken
	}
	h.Cookies.SetPair(c, res.AccessToken, accessExp, refresh, refreshExp)

	response.Success(c, http.StatusOK, gin.H{
		"id":            res.ID,
		"email":         res.Email,
		"username":      res.Username,
		"created_at":    res.CreatedAt,
		"updated_at":    res.UpdatedAt,
		"access_token":  res.AccessToken,
		"refresh_token": res.RefreshToken,
	}, "login successful", map[string]any{"access_expires_at": accessExp, "refresh_expires_at": refreshExp})
}

// UpdatePassword PUT /api/auth/password (auth required)
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserID)
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.ChangePassword.Execute(c.Request.Context(), command.ChangeLocalPassword{
		UserID:          uid,
		AuthType:        authTypeOf(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.writeError(c, err, "new_password")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user_id":             res.UserID.String(),
		"password_expired_at": res.PasswordExpiredAt,
	}, "password changed", nil)
}

// authTypeOf returns the login method recorded in the access token, or "" when
// the token carries none.
func authTypeOf(c *gin.Context) valueobject.AuthType {
	v, _ := c.Get(middleware.CtxClaims)
	claims, _ := v.(port.Claims)
	return valueobject.AuthType(claims.String(port.ClaimAuthType))
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, userResponse{
		ID:       c.GetString(middleware.CtxUserID),
		Username: c.GetString(middleware.CtxUserName),
		Email:    c.GetString(middleware.CtxUserEmail),
	}, "profile", nil)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

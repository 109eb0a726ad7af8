// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/feature/auth/transport/http/dto"
	"movie_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規アカウントを登録し、トークンを発行します。
	Signup(ctx context.Context, in usecase.SignupInput) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - 必須項目の欠落、不正なプラン、長すぎるパスワード、既存ユーザーは400を返却
// - 成功時はトークンとユーザー情報付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup: bad body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Please provide all required fields"})
		return
	}
	res, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		SubscriptionPlan: req.Plan,
	})
	if err != nil {
		status, msg := signupError(err)
		if status == http.StatusInternalServerError {
			slog.Error("signup failed", "error", err)
		} else {
			slog.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
		}
		c.JSON(status, dto.ErrorRes{Message: msg})
		return
	}
	slog.Info("user signup successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthRes{Success: true, Token: res.Token, User: dto.NewUserRes(res.User)})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 必須項目の欠落は400、認証失敗は401を返却
// - ユーザー列挙攻撃を防止するため、メール未登録とパスワード不一致は同じ応答にする
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login: bad body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Please provide email and password"})
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "Please provide email and password"})
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Invalid credentials"})
		return
	default:
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal server error"})
		return
	}
	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthRes{Success: true, Token: res.Token, User: dto.NewUserRes(res.User)})
}

// signupError maps signup failures to a status and a client-facing message.
// A taken username or email is reported as 400, not 409.
func signupError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrMissingSignupFields):
		return http.StatusBadRequest, "Please provide all required fields"
	case errors.Is(err, usecase.ErrInvalidPlan):
		return http.StatusBadRequest, "Invalid subscription plan"
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, usecase.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password must be at most 72 bytes"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

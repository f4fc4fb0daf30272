package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "tracker/internal/delivery/context"
	"tracker/internal/delivery/http/response"
	"tracker/internal/domain/entity"
	domainerrors "tracker/internal/domain/errors"
	"tracker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the login, OTP, refresh and logout endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

type loginResponse struct {
	TempToken string `json:"temp_token"`
}

type sessionResponse struct {
	ProfileResponse

	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Login checks the password and answers with the handle of a new OTP challenge.
func (h *AuthHandler) Login(c echo.Context) error {
	payload, err := bindStringPayload(c, "username", "password")
	if err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Username: payload["username"],
		Password: payload["password"],
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "OTP generated", loginResponse{TempToken: output.TempToken})
}

// VerifyOTP completes the login and answers with the profile and both tokens.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	payload, err := bindStringPayload(c, "temp_token", "otp")
	if err != nil {
		return err
	}

	output, err := h.authUC.VerifyOTP(c.Request().Context(), &usecase.VerifyOTPInput{
		TempToken: payload["temp_token"],
		OTP:       payload["otp"],
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Login successful", sessionResponse{
		ProfileResponse: newProfileResponse(output.User),
		AccessToken:     output.Tokens.AccessToken,
		RefreshToken:    output.Tokens.RefreshToken,
	})
}

// Refresh mints a new access token and revokes the one in the Authorization header.
func (h *AuthHandler) Refresh(c echo.Context) error {
	payload, err := bindStringPayload(c, "refresh_token")
	if err != nil {
		return err
	}

	output, err := h.authUC.Refresh(c.Request().Context(), &usecase.RefreshInput{
		RefreshToken:        payload["refresh_token"],
		AuthorizationHeader: c.Request().Header.Get(echo.HeaderAuthorization),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Token refreshed successfully", refreshResponse{AccessToken: output.AccessToken})
}

// Logout revokes the caller's access token and the supplied refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrMissingAuthHeader
	}

	payload, err := bindStringPayload(c, "refresh_token")
	if err != nil {
		return err
	}

	if err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{
		Principal:    principal,
		RefreshToken: payload["refresh_token"],
	}); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "Logout successful", nil)
}

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	ID          int64          `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Gender      *entity.Gender `json:"gender"`
	PhoneNumber string         `json:"phone_number"`
	IsStaff     bool           `json:"is_staff"`
	IsActive    bool           `json:"is_active"`
}

func newProfileResponse(user *entity.User) ProfileResponse {
	return ProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Gender:      user.Gender,
		PhoneNumber: user.PhoneNumber,
		IsStaff:     user.IsStaff,
		IsActive:    user.IsActive,
	}
}

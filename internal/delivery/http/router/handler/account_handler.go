package handler

import (
	"log/slog"
	"net/http"

	"zentora/internal/delivery/http/middleware"
	"zentora/internal/delivery/http/response"
	"zentora/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type passwordGateRequest struct {
	Password string `json:"password" validate:"required"`
}

type reactivateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler holds dependencies for account lifecycle handlers.
type AccountHandler struct {
	uc      usecase.AccountUsecase
	cookies *CookieManager
	logger  *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, cookies *CookieManager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// Me handles the current-profile request.
func (h *AccountHandler) Me(c echo.Context) error {
	user, err := h.uc.Me(c.Request().Context(), middleware.AccessToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// ChangePassword handles the password change request.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		AccessToken:     middleware.AccessToken(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.ClearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Password changed, please log in again")
}

// ForgotPassword handles the reset code request. The response is the
// same whether or not the email is registered.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "If the email is registered, a reset code has been sent")
}

// ResetPassword handles the password reset request.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset, please log in again")
}

// RevokeAll handles the revoke-all-sessions request.
func (h *AccountHandler) RevokeAll(c echo.Context) error {
	var req passwordGateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RevokeAll(c.Request().Context(), middleware.AccessToken(c), req.Password); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.ClearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "All sessions revoked")
}

// DeleteAccount handles the account deletion request.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	var req passwordGateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), middleware.AccessToken(c), req.Password); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.ClearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}

// Reactivate handles the account reactivation request.
func (h *AccountHandler) Reactivate(c echo.Context) error {
	var req reactivateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reactivation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Reactivate(c.Request().Context(), &usecase.ReactivateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &authPayload{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "Account reactivated")
}

// CleanupUnverified handles the admin sweep of stale unverified accounts.
func (h *AccountHandler) CleanupUnverified(c echo.Context) error {
	count, err := h.uc.CleanupUnverified(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"deleted": count}, "Unverified accounts removed")
}

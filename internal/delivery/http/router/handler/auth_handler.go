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

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"full_name" validate:"required"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type authPayload struct {
	AccessToken    string               `json:"access_token"`
	RefreshToken   string               `json:"refresh_token"`
	RefreshWarning string               `json:"refresh_warning,omitempty"`
	User           *usecase.UserSummary `json:"user"`
}

// AuthHandler holds dependencies for registration and session handlers.
type AuthHandler struct {
	uc      usecase.AuthUsecase
	cookies *CookieManager
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cookies *CookieManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "Registration successful, please verify your email")
}

// VerifyEmail handles the email verification request.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification code is required")
	}

	output, err := h.uc.VerifyEmail(c.Request().Context(), code)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &authPayload{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "Email verified successfully")
}

// ResendVerification handles the verification code resend request.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Verification email sent")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
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
	}, "Login successful")
}

// Refresh handles the token rotation request. The refresh token is read
// from the refresh_token cookie first, then from the request body.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(cookieRefreshToken); err == nil && cookie.Value != "" {
		refreshToken = cookie.Value
	} else {
		var req refreshRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
		}
		refreshToken = req.RefreshToken
	}

	if refreshToken == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Refresh token is required")
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, &authPayload{
		AccessToken:    output.AccessToken,
		RefreshToken:   output.RefreshToken,
		RefreshWarning: output.Warning,
		User:           output.User,
	}, "Token refreshed successfully")
}

// Logout handles the logout request.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), middleware.AccessToken(c)); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.ClearAuthCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

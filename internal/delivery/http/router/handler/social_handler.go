package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"zentora/config"
	"zentora/internal/delivery/http/response"
	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type exchangeRequest struct {
	Code string `json:"code" validate:"required"`
}

type exchangePayload struct {
	AccessToken string               `json:"access_token"`
	User        *usecase.UserSummary `json:"user"`
}

// SocialHandler holds dependencies for the OAuth sign-in handlers.
type SocialHandler struct {
	uc          usecase.SocialUsecase
	cookies     *CookieManager
	frontendURL string
	logger      *slog.Logger
}

// NewSocialHandler is the constructor for SocialHandler, injected by Fx.
func NewSocialHandler(uc usecase.SocialUsecase, cookies *CookieManager, cfg *config.Config, logger *slog.Logger) *SocialHandler {
	frontendURL := ""
	if cfg.Frontend != nil {
		frontendURL = cfg.Frontend.BaseURL
	}

	return &SocialHandler{
		uc:          uc,
		cookies:     cookies,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Login starts the provider consent flow. With ?redirect=true the
// browser is sent straight to the provider; otherwise the URL is
// returned as JSON for the frontend to use.
func (h *SocialHandler) Login(c echo.Context) error {
	provider, err := parseProvider(c.Param("provider"))
	if err != nil {
		return errors.WithStack(err)
	}

	authURL, err := h.uc.AuthorizationURL(c.Request().Context(), provider)
	if err != nil {
		return errors.WithStack(err)
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, authURL)
	}

	return response.Success(c, http.StatusOK, map[string]string{"auth_url": authURL}, "Authorization URL generated")
}

// Callback handles the provider redirect. On success the browser lands
// on the frontend callback page carrying only the single-use exchange
// code, never the tokens themselves.
func (h *SocialHandler) Callback(c echo.Context) error {
	provider, err := parseProvider(c.Param("provider"))
	if err != nil {
		return errors.WithStack(err)
	}

	if errParam := c.QueryParam("error"); errParam != "" {
		return h.redirectWithError(c, errParam)
	}

	code, err := h.uc.HandleCallback(c.Request().Context(), &usecase.CallbackInput{
		Provider: provider,
		State:    c.QueryParam("state"),
		Code:     c.QueryParam("code"),
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return h.redirectWithError(c, appErr.ErrorCode())
		}

		return errors.WithStack(err)
	}

	target := h.frontendURL + "/auth/callback?code=" + url.QueryEscape(code)

	return c.Redirect(http.StatusTemporaryRedirect, target)
}

// Exchange redeems the single-use exchange code for the session tokens.
func (h *SocialHandler) Exchange(c echo.Context) error {
	var req exchangeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid exchange input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Exchange(c.Request().Context(), req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAuthCookies(c, output.AccessToken, output.RefreshToken)

	// The refresh token travels only in its cookie.
	return response.Success(c, http.StatusOK, &exchangePayload{
		AccessToken: output.AccessToken,
		User:        output.User,
	}, "Authentication successful")
}

func (h *SocialHandler) redirectWithError(c echo.Context, code string) error {
	target := h.frontendURL + "/auth/callback?error=" + url.QueryEscape(code)

	return c.Redirect(http.StatusTemporaryRedirect, target)
}

func parseProvider(raw string) (entity.AuthProvider, error) {
	provider := entity.AuthProvider(raw)
	if !provider.IsValid() || !provider.IsSocial() {
		return "", errors.Wrapf(domainerrors.ErrOAuthProviderUnknown, "unknown provider %q", raw)
	}

	return provider, nil
}

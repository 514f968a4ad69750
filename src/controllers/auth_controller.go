package controllers

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"Backend-Schoolhub/src/middleware"
	"Backend-Schoolhub/src/services/auth"
	"Backend-Schoolhub/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

type AuthController struct {
	svc         *auth.Service
	google      *auth.GoogleLogin
	frontendURL string
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// WithGoogle enables Google sign-in; the callback redirects to frontendURL + "/auth/callback".
func (ac *AuthController) WithGoogle(g *auth.GoogleLogin, frontendURL string) *AuthController {
	ac.google = g
	ac.frontendURL = frontendURL
	return ac
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  auth.LoginResult
// @Failure      400   {object}  models.ErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Failure      429   {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	res, err := ac.svc.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, auth.ErrTooManyAttempts) {
		wait := ac.svc.RetryAfter(c.UserContext(), req.Email)
		return utils.HandleError(c, fiber.StatusTooManyRequests, fmt.Sprintf(
			"Too many login attempts. Please try again in %d minutes and %d seconds.",
			int(wait.Minutes()), int(wait.Seconds())%60))
	}
	if err != nil {
		return utils.HandleAppError(c, err)
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    res,
	})
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	token, expiresAt := middleware.CurrentToken(c)
	if token == "" {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User not authenticated")
	}
	if err := ac.svc.Logout(c.UserContext(), token, expiresAt); err != nil {
		return utils.HandleAppError(c, err)
	}
	c.ClearCookie("token")
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// GoogleLogin godoc
// @Summary      Start Google sign-in
// @Description  Returns the Google consent URL and sets a short-lived state cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  models.ErrorResponse
// @Router       /auth/google/login [get]
func (ac *AuthController) GoogleLogin(c *fiber.Ctx) error {
	if ac.google == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"url": ac.google.AuthCodeURL(state)})
}

// GoogleCallback godoc
// @Summary      Google sign-in callback
// @Description  Redirects to the frontend with either a token or an error
// @Tags         auth
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "State issued by /auth/google/login"
// @Success      302
// @Router       /auth/google/callback [get]
func (ac *AuthController) GoogleCallback(c *fiber.Ctx) error {
	if ac.google == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "Google sign-in is not configured")
	}
	if e := c.Query("error"); e != "" {
		return ac.redirectWith(c, "error", e)
	}
	state := c.Cookies(oauthStateCookie)
	c.ClearCookie(oauthStateCookie)
	if state == "" || c.Query("state") != state {
		return ac.redirectWith(c, "error", "invalid_state")
	}

	res, err := ac.google.Exchange(c.UserContext(), c.Query("code"))
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return ac.redirectWith(c, "error", appErr.Message)
		}
		return ac.redirectWith(c, "error", "google_login_failed")
	}
	return ac.redirectWith(c, "token", res.Token)
}

func (ac *AuthController) redirectWith(c *fiber.Ctx, key, value string) error {
	return c.Redirect(fmt.Sprintf("%s/auth/callback?%s=%s", ac.frontendURL, key, url.QueryEscape(value)))
}

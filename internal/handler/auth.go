package handler

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/auth"
	"github.com/devconnector/devconnector/internal/config"
	"github.com/devconnector/devconnector/internal/repository"
	"github.com/devconnector/devconnector/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and the
// current-user endpoint.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/users: create an account and return a session
// token. A duplicate email is a hard stop before anything is written. The
// token is signed before the insert (the id is generated here, not by the
// database), so a signing failure persists nothing and an insert failure
// returns no token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "enter a valid email")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "password must be at least 6 characters")
	}
	if len(msgs) > 0 {
		return validationFailed(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		return validationFailed(c, "user already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return serverError(c, err)
	}

	user := repository.User{
		ID:           repository.NewID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Avatar:       utils.GravatarURL(req.Email),
	}
	token, err := auth.IssueToken(user.ID, h.Cfg.JWTSecret, h.Cfg.TokenTTL)
	if err != nil {
		return serverError(c, err)
	}
	if err := h.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost a race with a concurrent registration.
			return validationFailed(c, "user already exists")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Login handles POST /api/auth: verify credentials and return a session
// token. Unknown email and wrong password produce the same message so the
// response does not reveal which check failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var msgs []string
	if _, err := mail.ParseAddress(req.Email); err != nil {
		msgs = append(msgs, "enter a valid email")
	}
	if req.Password == "" {
		msgs = append(msgs, "password is required")
	}
	if len(msgs) > 0 {
		return validationFailed(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return validationFailed(c, "invalid credentials")
		}
		return serverError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return validationFailed(c, "invalid credentials")
	}

	token, err := auth.IssueToken(u.ID, h.Cfg.JWTSecret, h.Cfg.TokenTTL)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me handles GET /api/auth: return the authenticated user without the
// password hash.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "user not found")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Package handler implements the HTTP endpoints. Handlers depend on small
// store interfaces rather than concrete repositories so tests can run
// against in-memory fakes.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/middleware"
	"github.com/devconnector/devconnector/internal/repository"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *repository.User) error
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id string) (repository.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileStore is the slice of the profile repository the handlers need.
type ProfileStore interface {
	Upsert(ctx context.Context, p *repository.Profile) error
	GetByUserID(ctx context.Context, userID string) (repository.Profile, error)
	ListAll(ctx context.Context) ([]repository.Profile, error)
	AddExperience(ctx context.Context, e *repository.Experience) error
	RemoveExperience(ctx context.Context, userID, id string) error
	AddEducation(ctx context.Context, e *repository.Education) error
	RemoveEducation(ctx context.Context, userID, id string) error
}

// PostStore is the slice of the post repository the handlers need.
type PostStore interface {
	Create(ctx context.Context, p *repository.Post) error
	GetByID(ctx context.Context, id string) (repository.Post, error)
	ListAll(ctx context.Context) ([]repository.Post, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	ListLikes(ctx context.Context, postID string) ([]repository.Like, error)
}

var errNoIdentity = errors.New("no authenticated identity in context")

// authedUserID returns the identity the auth gate attached to the context.
func authedUserID(c echo.Context) (string, error) {
	id, ok := c.Get(middleware.UserIDKey).(string)
	if !ok || id == "" {
		return "", errNoIdentity
	}
	return id, nil
}

type fieldError struct {
	Msg string `json:"msg"`
}

// validationFailed renders field-level messages as {"errors":[{"msg":...}]}.
func validationFailed(c echo.Context, msgs ...string) error {
	errs := make([]fieldError, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, fieldError{Msg: m})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
}

// message renders a single-message response {"msg":...}.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"msg": msg})
}

// serverError logs the cause and returns a generic 500; internals never
// reach the client.
func serverError(c echo.Context, err error) error {
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return message(c, http.StatusInternalServerError, "server error")
}

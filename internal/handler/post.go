package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/queue"
	"github.com/devconnector/devconnector/internal/repository"
)

// PostHandler serves the post feed: create/read/delete plus like/unlike.
// Publish is called best-effort after create and like; a nil Publish
// disables events.
type PostHandler struct {
	Posts   PostStore
	Users   UserStore
	Publish func(ctx context.Context, ev queue.ActivityEvent) error
}

func NewPostHandler(posts PostStore, users UserStore,
	publish func(ctx context.Context, ev queue.ActivityEvent) error) *PostHandler {
	return &PostHandler{Posts: posts, Users: users, Publish: publish}
}

type postReq struct {
	Text string `json:"text"`
}

// Create handles POST /api/posts. The author's name and avatar are
// snapshotted onto the post at creation time.
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	var req postReq
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "invalid request body")
	}
	if req.Text == "" {
		return validationFailed(c, "text is required")
	}

	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return serverError(c, err)
	}
	post := repository.Post{
		UserID: userID,
		Text:   req.Text,
		Name:   u.Name,
		Avatar: u.Avatar,
	}
	if err := h.Posts.Create(c.Request().Context(), &post); err != nil {
		return serverError(c, err)
	}
	h.publish(c, queue.ActivityEvent{
		Type:    queue.ActivityPostCreated,
		PostID:  post.ID,
		ActorID: userID,
		OwnerID: userID,
	})
	return c.JSON(http.StatusOK, post)
}

// List handles GET /api/posts: all posts, newest first.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.Posts.ListAll(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/posts/:id.
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.Posts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "post not found")
		}
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id. Only the owner may delete; a
// mismatch is 403 and the post is untouched.
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	post, err := h.Posts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "post not found")
		}
		return serverError(c, err)
	}
	if post.UserID != userID {
		return message(c, http.StatusForbidden, "user not authorized")
	}
	if err := h.Posts.Delete(c.Request().Context(), post.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return serverError(c, err)
	}
	return message(c, http.StatusOK, "post removed")
}

// Like handles PUT /api/posts/like/:id. The like set is keyed on
// (post, user), so a second like from the same user fails without
// changing the count.
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	post, err := h.Posts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "post not found")
		}
		return serverError(c, err)
	}
	if err := h.Posts.Like(c.Request().Context(), post.ID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return message(c, http.StatusBadRequest, "post already liked")
		}
		return serverError(c, err)
	}
	h.publish(c, queue.ActivityEvent{
		Type:    queue.ActivityPostLiked,
		PostID:  post.ID,
		ActorID: userID,
		OwnerID: post.UserID,
	})
	likes, err := h.Posts.ListLikes(c.Request().Context(), post.ID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /api/posts/unlike/:id.
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := authedUserID(c)
	if err != nil {
		return message(c, http.StatusUnauthorized, "authorization denied")
	}
	post, err := h.Posts.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "post not found")
		}
		return serverError(c, err)
	}
	if err := h.Posts.Unlike(c.Request().Context(), post.ID, userID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return message(c, http.StatusBadRequest, "post not yet liked")
		}
		return serverError(c, err)
	}
	likes, err := h.Posts.ListLikes(c.Request().Context(), post.ID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(http.StatusOK, likes)
}

// publish fires an activity event without blocking or failing the request.
func (h *PostHandler) publish(c echo.Context, ev queue.ActivityEvent) {
	if h.Publish == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		defer cancel()
		_ = h.Publish(ctx, ev) // errors are logged by the publisher
	}()
}

package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/devconnector/internal/queue"
	"github.com/devconnector/devconnector/internal/repository"
)

func seedUser(t *testing.T, users *fakeUsers, name, email string) repository.User {
	t.Helper()
	u := repository.User{
		ID:           repository.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Avatar:       "https://www.gravatar.com/avatar/abc",
	}
	require.NoError(t, users.Create(t.Context(), &u))
	return u
}

func seedPost(t *testing.T, h *PostHandler, owner repository.User, text string) repository.Post {
	t.Helper()
	rec := invoke(t, h.Create, http.MethodPost, `{"text":"`+text+`"}`, owner.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	posts, err := h.Posts.ListAll(t.Context())
	require.NoError(t, err)
	for _, p := range posts {
		if p.Text == text {
			return p
		}
	}
	t.Fatalf("seeded post %q not found", text)
	return repository.Post{}
}

func newPostHandler() (*PostHandler, *fakeUsers, *fakePosts) {
	users := newFakeUsers()
	posts := newFakePosts()
	return NewPostHandler(posts, users, nil), users, posts
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")

	post := seedPost(t, h, alice, "hello world")
	assert.Equal(t, alice.ID, post.UserID)
	assert.Equal(t, "Alice", post.Name)
	assert.Equal(t, alice.Avatar, post.Avatar)
	assert.Empty(t, post.Likes)
}

func TestLikeTwice_SecondIsRejected(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")
	post := seedPost(t, h, alice, "like me")

	rec := invoke(t, h.Like, http.MethodPut, "", bob.ID, map[string]string{"id": post.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	likes, err := h.Posts.ListLikes(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	rec = invoke(t, h.Like, http.MethodPut, "", bob.ID, map[string]string{"id": post.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already liked")

	likes, err = h.Posts.ListLikes(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1, "second like must not change the count")
}

func TestUnlike_NeverLiked(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")
	post := seedPost(t, h, alice, "nobody likes me")

	rec := invoke(t, h.Unlike, http.MethodPut, "", bob.ID, map[string]string{"id": post.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not yet liked")

	likes, err := h.Posts.ListLikes(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestDeletePost_ForeignOwnerForbidden(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")
	post := seedPost(t, h, alice, "mine")

	rec := invoke(t, h.Delete, http.MethodDelete, "", bob.ID, map[string]string{"id": post.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The post must be untouched.
	got, err := h.Posts.GetByID(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Text)
}

func TestDeletePost_Owner(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")
	post := seedPost(t, h, alice, "mine")

	rec := invoke(t, h.Delete, http.MethodDelete, "", alice.ID, map[string]string{"id": post.ID})
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := h.Posts.GetByID(t.Context(), post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetPost_NotFound(t *testing.T) {
	t.Parallel()

	h, users, _ := newPostHandler()
	alice := seedUser(t, users, "Alice", "a@x.com")

	rec := invoke(t, h.Get, http.MethodGet, "", alice.ID, map[string]string{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLike_PublishesActivity(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	posts := newFakePosts()
	events := make(chan string, 2)
	h := NewPostHandler(posts, users, func(ctx context.Context, ev queue.ActivityEvent) error {
		events <- ev.Type
		return nil
	})

	alice := seedUser(t, users, "Alice", "a@x.com")
	bob := seedUser(t, users, "Bob", "b@x.com")
	post := seedPost(t, h, alice, "event me")

	rec := invoke(t, h.Like, http.MethodPut, "", bob.ID, map[string]string{"id": post.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	// Publishing is fire-and-forget, so arrival order is not guaranteed.
	got := map[string]bool{<-events: true, <-events: true}
	assert.True(t, got[queue.ActivityPostCreated])
	assert.True(t, got[queue.ActivityPostLiked])
}

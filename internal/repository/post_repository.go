package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Like records one user liking one post; the pair is the primary key.
type Like struct {
	PostID    string    `json:"-"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is owned by exactly one user. Name and Avatar are a snapshot of the
// author at creation time so the feed stays renderable even if the account
// later changes or disappears.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post, generating its id.
func (r *PostRepo) Create(ctx context.Context, p *Post) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.Likes = []Like{}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (id, user_id, text, name, avatar, created_at) VALUES (?,?,?,?,?,?)",
		p.ID, p.UserID, p.Text, p.Name, p.Avatar, p.CreatedAt)
	return err
}

// GetByID loads a post with its likes.
func (r *PostRepo) GetByID(ctx context.Context, id string) (Post, error) {
	var p Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, text, name, avatar, created_at FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	if err != nil {
		return Post{}, err
	}
	p.Likes, err = r.ListLikes(ctx, id)
	return p, err
}

// ListAll returns every post, newest first, likes attached via one grouped
// query.
func (r *PostRepo) ListAll(ctx context.Context) ([]Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, text, name, avatar, created_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[string]int{}
	posts := make([]Post, 0)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Likes = []Like{}
		byID[p.ID] = len(posts)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	likeRows, err := r.DB.QueryContext(ctx,
		"SELECT post_id, user_id, created_at FROM likes ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var l Like
		if err := likeRows.Scan(&l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := byID[l.PostID]; ok {
			posts[i].Likes = append(posts[i].Likes, l)
		}
	}
	return posts, likeRows.Err()
}

// Delete removes a post. Ownership is checked by the handler against the
// loaded post before calling this.
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Like adds the user to the post's like set. The (post_id, user_id)
// primary key makes the insert the idempotence guard: a second like is a
// duplicate-key error, reported as ErrAlreadyLiked, and changes nothing.
func (r *PostRepo) Like(ctx context.Context, postID, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO likes (post_id, user_id) VALUES (?,?)", postID, userID)
	if isDuplicate(err) {
		return ErrAlreadyLiked
	}
	return err
}

// Unlike removes the user from the post's like set. Zero affected rows
// means the like never existed, reported as ErrNotLiked.
func (r *PostRepo) Unlike(ctx context.Context, postID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM likes WHERE post_id=? AND user_id=?", postID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotLiked
	}
	return nil
}

// ListLikes returns the like set of a post, newest first.
func (r *PostRepo) ListLikes(ctx context.Context, postID string) ([]Like, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT post_id, user_id, created_at FROM likes WHERE post_id=? ORDER BY created_at DESC",
		postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Like, 0)
	for rows.Next() {
		var l Like
		if err := rows.Scan(&l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// NewID exposes id generation for callers that must know an identifier
// before the row exists (registration signs the session token first).
func NewID() string { return uuid.NewString() }

package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/devconnector/devconnector/internal/repository"
)

// In-memory stores used by the handler tests.

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]repository.User // by id
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]repository.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *repository.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	u.CreatedAt = time.Now().UTC()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]repository.Profile    // by user id
	exps     map[string][]repository.Experience // by user id
	edus     map[string][]repository.Education  // by user id
	seq      int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		profiles: map[string]repository.Profile{},
		exps:     map[string][]repository.Experience{},
		edus:     map[string][]repository.Education{},
	}
}

func (f *fakeProfiles) Upsert(_ context.Context, p *repository.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	f.profiles[p.UserID] = *p
	return nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (repository.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return repository.Profile{}, repository.ErrNotFound
	}
	p.Experiences = append([]repository.Experience{}, f.exps[userID]...)
	p.Educations = append([]repository.Education{}, f.edus[userID]...)
	return p, nil
}

func (f *fakeProfiles) ListAll(_ context.Context) ([]repository.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) AddExperience(_ context.Context, e *repository.Experience) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	e.ID = fmt.Sprintf("exp-%d", f.seq)
	f.exps[e.UserID] = append(f.exps[e.UserID], *e)
	return nil
}

func (f *fakeProfiles) RemoveExperience(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.exps[userID] {
		if e.ID == id {
			f.exps[userID] = append(f.exps[userID][:i], f.exps[userID][i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeProfiles) AddEducation(_ context.Context, e *repository.Education) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	e.ID = fmt.Sprintf("edu-%d", f.seq)
	f.edus[e.UserID] = append(f.edus[e.UserID], *e)
	return nil
}

func (f *fakeProfiles) RemoveEducation(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.edus[userID] {
		if e.ID == id {
			f.edus[userID] = append(f.edus[userID][:i], f.edus[userID][i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePosts struct {
	mu    sync.Mutex
	posts map[string]*repository.Post
	seq   int
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[string]*repository.Post{}}
}

func (f *fakePosts) Create(_ context.Context, p *repository.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = fmt.Sprintf("post-%d", f.seq)
	p.CreatedAt = time.Now().UTC()
	p.Likes = []repository.Like{}
	stored := *p
	f.posts[p.ID] = &stored
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id string) (repository.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return repository.Post{}, repository.ErrNotFound
	}
	out := *p
	out.Likes = append([]repository.Like{}, p.Likes...)
	return out, nil
}

func (f *fakePosts) ListAll(_ context.Context) ([]repository.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePosts) Like(_ context.Context, postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, l := range p.Likes {
		if l.UserID == userID {
			return repository.ErrAlreadyLiked
		}
	}
	p.Likes = append(p.Likes, repository.Like{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()})
	return nil
}

func (f *fakePosts) Unlike(_ context.Context, postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotLiked
}

func (f *fakePosts) ListLikes(_ context.Context, postID string) ([]repository.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]repository.Like{}, p.Likes...), nil
}

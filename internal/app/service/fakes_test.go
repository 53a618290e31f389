package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"itemtrack/internal/common"
	"itemtrack/internal/common/security"
	"itemtrack/internal/domain/model"
	"itemtrack/internal/platform/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: []byte("test-secret")}
	security.InitJWT()
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// fakeUserRepo is an in-memory repository.UserRepository emulating the
// uniqueness constraint and the DB-side timestamps.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
	order []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	f.order = append(f.order, user.ID)
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []model.User{}
	for _, id := range f.order {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return common.ErrConflict
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeItemRepo scopes lookups to the owner the same way the SQL predicates do.
type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]*model.Item
	order []string
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*model.Item{}}
}

func (f *fakeItemRepo) Create(ctx context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	clone := *item
	f.items[item.ID] = &clone
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeItemRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []model.Item{}
	for _, id := range f.order {
		if it, ok := f.items[id]; ok && it.UserID == ownerID {
			items = append(items, *it)
		}
	}
	return items, nil
}

func (f *fakeItemRepo) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || it.UserID != ownerID {
		return nil, common.ErrNotFound
	}
	clone := *it
	return &clone, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return common.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	clone := *item
	f.items[item.ID] = &clone
	return nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok || it.UserID != ownerID {
		return common.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) DeleteByOwner(ctx context.Context, tx *sql.Tx, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, it := range f.items {
		if it.UserID == ownerID {
			delete(f.items, id)
		}
	}
	return nil
}

// fakeSubjectCache records hits and invalidations.
type fakeSubjectCache struct {
	mu          sync.Mutex
	entries     map[string]model.Subject
	invalidated []string
	sets        int
}

func newFakeSubjectCache() *fakeSubjectCache {
	return &fakeSubjectCache{entries: map[string]model.Subject{}}
}

func (f *fakeSubjectCache) Get(ctx context.Context, userID string) (model.Subject, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.entries[userID]
	return sub, ok
}

func (f *fakeSubjectCache) Set(ctx context.Context, sub model.Subject) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[sub.ID] = sub
	f.sets++
}

func (f *fakeSubjectCache) Invalidate(ctx context.Context, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, userID)
	f.invalidated = append(f.invalidated, userID)
}

// mustSignup registers a user through the real auth service and returns it.
func mustSignup(t *testing.T, authSvc *AuthService, email, password string) AuthUser {
	t.Helper()
	resp, err := authSvc.Signup(context.Background(), SignupRequest{
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	require.NoError(t, err)
	return resp.User
}

package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps users in a mutex-guarded map. It mirrors the
// Postgres semantics (add-to-set keyed on catalog id, self-scoped delete)
// and backs service and resolver tests.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: map[string]*models.User{}}
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, cloneUser(u))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := cloneUser(user)
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	if u.Books == nil {
		u.Books = []models.Book{}
	}
	r.users[u.ID] = u

	return cloneUser(u), nil
}

func (r *InMemoryRepository) AddBook(ctx context.Context, userID string, book models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if u.HasBook(book.BookID) {
		return nil
	}
	u.Books = append(u.Books, book)
	return nil
}

func (r *InMemoryRepository) RemoveBook(ctx context.Context, userID string, bookID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		// Matches the Postgres DELETE: removing from a vanished user is
		// not an error at the repository level.
		return nil
	}

	kept := u.Books[:0]
	for _, b := range u.Books {
		if b.BookID != bookID {
			kept = append(kept, b)
		}
	}
	u.Books = kept
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Books = make([]models.Book, len(u.Books))
	copy(c.Books, u.Books)
	return &c
}

// Package users contains the user repository: accounts plus the book
// sub-documents embedded in each account.
package users

import (
	"context"

	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
)

// Repository is the persistence contract for users and their saved books.
//
// AddBook has add-to-set semantics keyed on the book's catalog id: inserting
// an id the user already holds is a no-op, not an error. RemoveBook deletes
// every entry matching the catalog id from that user's collection only.
// Both are single atomic statements; callers wanting the post-update
// document pair them with GetByID inside a transaction.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	AddBook(ctx context.Context, userID string, book models.Book) error
	RemoveBook(ctx context.Context, userID string, bookID string) error
}

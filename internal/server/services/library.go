package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/dbx"
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/dmitrijs2005/bookkeeper/internal/server/repositories/repomanager"
)

// LibraryService mutates a user's saved-book collection. Each mutation is a
// single atomic statement paired with a read-back of the post-update
// document inside one transaction, so the returned user always reflects the
// applied change.
//
// SaveBook takes an explicit target user id: any valid session may write to
// any target, which is looser than RemoveBook. RemoveBook is hard-scoped to
// the caller's own collection. The GraphQL layer currently points SaveBook
// at the authenticated caller, but the asymmetric contract stays visible
// here on purpose.
type LibraryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLibraryService(db *sql.DB, m repomanager.RepositoryManager) *LibraryService {
	return &LibraryService{db: db, repomanager: m}
}

// SaveBook appends the book to the target user's collection with add-to-set
// semantics keyed on the catalog id: an id the user already holds is a
// silent no-op. Returns the updated user, or nil when the target user does
// not exist.
func (s *LibraryService) SaveBook(ctx context.Context, targetUserID string, book models.Book) (*models.User, error) {

	if book.BookID == "" || book.Title == "" || book.Description == "" {
		return nil, fmt.Errorf("%w: bookId, title and description are required", common.ErrorValidation)
	}

	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := repo.AddBook(ctx, targetUserID, book); err != nil {
			return err
		}

		u, err := repo.GetByID(ctx, targetUserID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error saving book: %w", err)
	}

	return user, nil
}

// RemoveBook deletes every entry matching the catalog id from the given
// user's own collection and returns the updated user, or nil when the user
// no longer exists.
func (s *LibraryService) RemoveBook(ctx context.Context, userID string, bookID string) (*models.User, error) {

	var user *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := repo.RemoveBook(ctx, userID, bookID); err != nil {
			return err
		}

		u, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = u
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error removing book: %w", err)
	}

	return user, nil
}

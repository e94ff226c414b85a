package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/dbx"
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository persists users in a `users` table and their books in a
// `user_books` table whose primary key (user_id, book_id) makes add-to-set
// a single INSERT ... ON CONFLICT DO NOTHING.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, password_hash)
         VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Books = []models.Book{}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	books, err := r.loadBooks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Books = books

	return user, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	byID := map[string]*models.User{}

	for rows.Next() {
		user := &models.User{Books: []models.Book{}}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
		byID[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	booksQuery :=
		`SELECT user_id, book_id, title, authors, description, image, link FROM user_books
		 ORDER BY added_at, book_id
		 `

	bookRows, err := r.db.QueryContext(ctx, booksQuery)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer bookRows.Close()

	for bookRows.Next() {
		var userID string
		book, err := scanBook(bookRows, &userID)
		if err != nil {
			return nil, err
		}
		if user, ok := byID[userID]; ok {
			user.Books = append(user.Books, book)
		}
	}
	if err := bookRows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) AddBook(ctx context.Context, userID string, book models.Book) error {

	authors, err := json.Marshal(book.Authors)
	if err != nil {
		return fmt.Errorf("authors encode error: %w", err)
	}

	query :=
		`INSERT INTO user_books (user_id, book_id, title, authors, description, image, link)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, book_id) DO NOTHING
		 `

	_, err = r.db.ExecContext(ctx, query,
		userID, book.BookID, book.Title, authors, book.Description, book.Image, book.Link)

	if err != nil {
		// A missing user surfaces as a foreign key violation; the caller
		// treats it the same as a lookup miss.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) RemoveBook(ctx context.Context, userID string, bookID string) error {

	query :=
		`DELETE FROM user_books
		 WHERE user_id = $1 AND book_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, bookID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) loadBooks(ctx context.Context, userID string) ([]models.Book, error) {
	query :=
		`SELECT user_id, book_id, title, authors, description, image, link FROM user_books
		 WHERE user_id = $1
		 ORDER BY added_at, book_id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var owner string
		book, err := scanBook(rows, &owner)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return books, nil
}

func scanBook(rows *sql.Rows, userID *string) (models.Book, error) {
	var (
		book    models.Book
		authors []byte
	)
	if err := rows.Scan(userID, &book.BookID, &book.Title, &authors, &book.Description, &book.Image, &book.Link); err != nil {
		return models.Book{}, fmt.Errorf("db error: %w", err)
	}
	if len(authors) > 0 {
		if err := json.Unmarshal(authors, &book.Authors); err != nil {
			return models.Book{}, fmt.Errorf("authors decode error: %w", err)
		}
	}
	return book, nil
}

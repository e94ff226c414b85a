// Package models contains the server-side domain entities: users and the
// books saved in their personal collections.
package models

import "time"

// User represents an account. The password is stored only as a bcrypt hash
// and is never serialized; the json tags line up with the GraphQL field
// names so default field resolution works.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Books        []Book    `json:"books"`
	CreatedAt    time.Time `json:"-"`
}

// BookCount is derived from the collection, never stored.
func (u *User) BookCount() int {
	return len(u.Books)
}

// HasBook reports whether the collection already holds an entry with the
// given catalog id. Catalog id is the only identity that matters for
// deduplication; other fields are ignored.
func (u *User) HasBook(bookID string) bool {
	for _, b := range u.Books {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}

// Book is a saved catalog entry embedded in a User. It is not independently
// addressable; BookID is the external catalog identifier and the
// deduplication/removal key.
type Book struct {
	BookID      string   `json:"bookId"`
	Authors     []string `json:"authors"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
}

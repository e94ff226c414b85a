// Package services contains server-side business logic. This file implements
// UserService, which handles account creation, login (minting session JWTs),
// and account lookups.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/server/auth"
	"github.com/dmitrijs2005/bookkeeper/internal/server/config"
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/dmitrijs2005/bookkeeper/internal/server/repositories/repomanager"
)

// UserService provides account-related operations:
//   - Register: create users, hashing the password before it is persisted
//   - Login: verify credentials and mint a session token
//   - GetAll / GetByID: public account lookups
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new user and returns the session artifact
// {token, user}. The plaintext password is hashed here and never reaches a
// repository. A duplicate email surfaces as the store's generic error; it is
// deliberately not translated into anything more specific.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.Auth, error) {

	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newAuth(user)
}

// Login verifies the email/password pair and, on success, returns
// {token, user}. An unknown email and a wrong password both yield the same
// common.ErrorUnauthorized so callers cannot probe which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Auth, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.newAuth(user)
}

// GetAll returns every account. Public, read-only.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)

	users, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// GetByID returns the account with the given id, or nil when the id no
// longer resolves to a user. A miss is a valid outcome, not an error.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (s *UserService) newAuth(user *models.User) (*models.Auth, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &models.Auth{Token: token, User: user}, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/dbx"
	"github.com/dmitrijs2005/bookkeeper/internal/server/auth"
	"github.com/dmitrijs2005/bookkeeper/internal/server/config"
	usersrepo "github.com/dmitrijs2005/bookkeeper/internal/server/repositories/users"
)

// --- helpers ---

type fakeRepoManager struct {
	repo usersrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.repo }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
	}
}

func newUserService(t *testing.T) (*UserService, *usersrepo.InMemoryRepository) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	repo := usersrepo.NewInMemoryRepository()
	return NewUserService(db, &fakeRepoManager{repo: repo}, testConfig()), repo
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	s, repo := newUserService(t)
	ctx := context.Background()

	got, err := s.Register(ctx, "ana", "ana@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.Token == "" {
		t.Fatalf("expected a session token")
	}
	if got.User == nil || got.User.Username != "ana" || got.User.Email != "ana@x.com" {
		t.Fatalf("unexpected user payload: %+v", got.User)
	}
	if got.User.BookCount() != 0 {
		t.Fatalf("new account must have an empty collection")
	}

	// The token embeds the created user's id.
	userID, err := auth.GetUserIDFromToken(got.Token, []byte("k"))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if userID != got.User.ID {
		t.Fatalf("token user id mismatch: got %q want %q", userID, got.User.ID)
	}

	// Only a verifiable hash was persisted; plaintext never.
	stored, err := repo.GetByEmail(ctx, "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if stored.PasswordHash == "pw123" {
		t.Fatalf("plaintext password was persisted")
	}
	if !auth.CheckPassword(stored.PasswordHash, "pw123") {
		t.Fatalf("stored hash must verify the original plaintext")
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	cases := [][3]string{
		{"", "ana@x.com", "pw123"},
		{"ana", "", "pw123"},
		{"ana", "ana@x.com", ""},
	}
	for _, c := range cases {
		_, err := s.Register(ctx, c[0], c[1], c[2])
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("expected validation error for %v, got %v", c, err)
		}
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	created, err := s.Register(ctx, "ana", "ana@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got, err := s.Login(ctx, "ana@x.com", "pw123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if got.Token == "" {
		t.Fatalf("expected a session token")
	}
	if got.User.ID != created.User.ID {
		t.Fatalf("login must resolve the same account: got %q want %q", got.User.ID, created.User.ID)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "ana", "ana@x.com", "pw123"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, unknownErr := s.Login(ctx, "ghost@x.com", "pw123")
	_, wrongPwErr := s.Login(ctx, "ana@x.com", "wrong")

	if !errors.Is(unknownErr, common.ErrorUnauthorized) {
		t.Fatalf("unknown email: expected common.ErrorUnauthorized, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: expected common.ErrorUnauthorized, got %v", wrongPwErr)
	}
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Fatalf("both failures must present the same error value: %q vs %q", unknownErr, wrongPwErr)
	}
}

// --- lookups ---

func TestGetByID_MissIsNilNotError(t *testing.T) {
	s, _ := newUserService(t)

	got, err := s.GetByID(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("a lookup miss must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}

func TestGetAll_ReturnsEveryAccount(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	_, _ = s.Register(ctx, "ana", "ana@x.com", "pw123")
	_, _ = s.Register(ctx, "bob", "bob@x.com", "pw456")

	got, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
}

// --- concrete scenario from the product contract ---

func TestAccountLifecycle(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	created, err := s.Register(ctx, "ana", "ana@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if created.User.Username != "ana" || created.User.Email != "ana@x.com" || created.User.BookCount() != 0 {
		t.Fatalf("unexpected created payload: %+v", created.User)
	}

	if _, err := s.Login(ctx, "ana@x.com", "wrong"); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}

	in, err := s.Login(ctx, "ana@x.com", "pw123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if in.User.ID != created.User.ID {
		t.Fatalf("login user id %q does not match created id %q", in.User.ID, created.User.ID)
	}
}

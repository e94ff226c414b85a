package graph

import (
	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
	"github.com/dmitrijs2005/bookkeeper/internal/server/auth"
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/dmitrijs2005/bookkeeper/internal/server/services"
	"github.com/graphql-go/graphql"
)

// Resolver holds the services the query/mutation fields dispatch to. Each
// resolver reads the identity context computed once per request by the
// guard middleware and decides whether to proceed or fail; it never derives
// identity itself.
type Resolver struct {
	users   *services.UserService
	library *services.LibraryService
	logger  logging.Logger
}

func NewResolver(us *services.UserService, ls *services.LibraryService, l logging.Logger) *Resolver {
	return &Resolver{
		users:   us,
		library: ls,
		logger:  l.With("module", "graph"),
	}
}

// users: public, no authentication required.
func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	return r.users.GetAll(p.Context)
}

// user(userId): public; a miss resolves to null, not an error.
func (r *Resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := p.Args["userId"].(string)
	return r.users.GetByID(p.Context, userID)
}

// me: requires a session. A populated context whose id no longer resolves
// yields null, which is distinct from the authentication failure.
func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	viewer, ok := auth.UserIDFromContext(p.Context)
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return r.users.GetByID(p.Context, viewer)
}

// addUser: public account creation, returns {token, user}.
func (r *Resolver) resolveAddUser(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	a, err := r.users.Register(p.Context, username, email, password)
	if err != nil {
		r.logger.Debug(p.Context, "addUser failed", "error", err)
		return nil, err
	}
	return a, nil
}

// login: public; unknown email and wrong password are indistinguishable.
func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	return r.users.Login(p.Context, email, password)
}

// saveBook: requires a session. The canonical schema carries no target-user
// argument, so the mutation writes to the authenticated caller's own
// collection; the service keeps an explicit target parameter.
func (r *Resolver) resolveSaveBook(p graphql.ResolveParams) (interface{}, error) {
	viewer, ok := auth.UserIDFromContext(p.Context)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	input, _ := p.Args["input"].(map[string]interface{})
	return r.library.SaveBook(p.Context, viewer, bookFromInput(input))
}

// removeBook: requires a session and is always scoped to the caller's own
// collection, never an externally supplied target.
func (r *Resolver) resolveRemoveBook(p graphql.ResolveParams) (interface{}, error) {
	viewer, ok := auth.UserIDFromContext(p.Context)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	bookID, _ := p.Args["bookId"].(string)
	return r.library.RemoveBook(p.Context, viewer, bookID)
}

func bookFromInput(input map[string]interface{}) models.Book {
	b := models.Book{}
	if v, ok := input["bookId"].(string); ok {
		b.BookID = v
	}
	if v, ok := input["title"].(string); ok {
		b.Title = v
	}
	if v, ok := input["description"].(string); ok {
		b.Description = v
	}
	if v, ok := input["image"].(string); ok {
		b.Image = v
	}
	if v, ok := input["link"].(string); ok {
		b.Link = v
	}
	if vs, ok := input["authors"].([]interface{}); ok {
		for _, a := range vs {
			if s, ok := a.(string); ok {
				b.Authors = append(b.Authors, s)
			}
		}
	}
	return b
}

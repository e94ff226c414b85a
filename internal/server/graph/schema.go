// Package graph contains the GraphQL contract of the service: the type
// system (User, Book, Auth, BookInput) and the resolver set implementing
// the query and mutation fields. The execution engine itself is
// graphql-go; everything with actual decision-making lives in the
// resolvers.
package graph

import (
	"github.com/dmitrijs2005/bookkeeper/internal/server/models"
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema around the given resolver set.
func NewSchema(r *Resolver) (graphql.Schema, error) {

	bookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.Fields{
			"bookId":      &graphql.Field{Type: graphql.String},
			"authors":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"image":       &graphql.Field{Type: graphql.String},
			"link":        &graphql.Field{Type: graphql.String},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":      &graphql.Field{Type: graphql.ID},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
			"bookCount": &graphql.Field{
				Type: graphql.Int,
				// Derived from the collection, never stored.
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*models.User); ok {
						return u.BookCount(), nil
					}
					return nil, nil
				},
			},
			"books": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(bookType))},
		},
	})

	authType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Auth",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"user":  &graphql.Field{Type: userType},
		},
	})

	bookInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"authors":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"bookId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"image":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"link":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(userType)),
				Resolve: r.resolveUsers,
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveUser,
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveMe,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveAddUser,
			},
			"login": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"saveBook": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookInput)},
				},
				Resolve: r.resolveSaveBook,
			},
			"removeBook": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveRemoveBook,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

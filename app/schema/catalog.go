// Package schema is the storefront's read-only GraphQL catalog: products
// and collections with the same derived fields the REST API serves.
package schema

import (
	"errors"
	"time"

	"github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	gql "github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

type node = map[string]interface{}

func collectionNode(c projector.CollectionRow) node {
	return node{
		"id":             int(c.ID),
		"title":          c.Title,
		"products_count": int(c.ProductsCount),
	}
}

func productNode(p projector.ProductRow) node {
	return node{
		"id":               int(p.ID),
		"title":            p.Title,
		"description":      p.Description,
		"price":            p.Price.StringFixed(2),
		"inventory":        p.Inventory,
		"inventory_status": p.InventoryStatus(),
		"tax":              p.Tax.String(),
		"total_price":      p.TotalPrice.String(),
		"last_update":      p.LastUpdate.UTC().Format(time.RFC3339),
		"collection_id":    int(p.CollectionID),
		"collection_title": p.CollectionTitle,
	}
}

// Catalog builds the schema over db. routes is only used by the services
// to build links and may be a bare router.
func Catalog(db *gorm.DB, routes *router.Router) (graphql.Schema, error) {
	catalog := services.NewCatalogService(db, routes)

	collectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Collection",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"products_count": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":               &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description":      &graphql.Field{Type: graphql.String},
			"price":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"inventory":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"inventory_status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tax":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"total_price":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"last_update":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"collection_title": &graphql.Field{Type: graphql.String},
			"collection": &graphql.Field{
				Type: collectionType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					src, _ := p.Source.(node)
					id, _ := src["collection_id"].(int)
					row, err := catalog.Collection(p.Context, uint(id))
					return resolved(err, func() node { return collectionNode(row) })
				},
			},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"collection": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var scopes []func(*gorm.DB) *gorm.DB
					if id, ok := p.Args["collection"].(int); ok {
						scopes = append(scopes, services.InCollection(uint(id)))
					}
					rows, err := catalog.Products(p.Context, scopes...)
					if err != nil {
						return nil, err
					}
					return collection.Map(rows, productNode), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					row, err := catalog.Product(p.Context, uint(id))
					return resolved(err, func() node { return productNode(row) })
				},
			},
			"collections": &graphql.Field{
				Type: graphql.NewList(collectionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rows, err := catalog.Collections(p.Context)
					if err != nil {
						return nil, err
					}
					return collection.Map(rows, collectionNode), nil
				},
			},
			"collection": &graphql.Field{
				Type: collectionType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					row, err := catalog.Collection(p.Context, uint(id))
					return resolved(err, func() node { return collectionNode(row) })
				},
			},
		},
	})

	return gql.NewSchema(query)
}

// resolved turns a single-row lookup into a resolver result: a missing
// row resolves to null rather than an error.
func resolved(err error, toNode func() node) (interface{}, error) {
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toNode(), nil
}

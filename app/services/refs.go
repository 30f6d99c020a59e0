package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// Detail route names that reference fields may link to.
const (
	RouteCollection = "collections.show"
	RouteProduct    = "products.show"
	RouteCustomer   = "admin.customers.change"
)

// resolveRef checks that ref names an existing T, recording a field error
// under field when it does not. It returns the referenced id.
func resolveRef[T any](ctx context.Context, tx *gorm.DB, routes *router.Router, ref *serializers.Ref, routeName, field string, errs validate.Errors) (uint, error) {
	if ref == nil {
		return 0, nil
	}
	id, msg := ref.Resolve(routes, routeName)
	if msg != "" {
		errs.Add(field, msg)
		return 0, nil
	}
	ok, err := repositories.New[T](tx).Exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		errs.Add(field, ref.NotFoundMessage())
		return 0, nil
	}
	return id, nil
}

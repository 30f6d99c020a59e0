package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// CatalogService owns products and collections.
type CatalogService struct {
	db     *gorm.DB
	routes *router.Router
}

func NewCatalogService(db *gorm.DB, routes *router.Router) *CatalogService {
	return &CatalogService{db: db, routes: routes}
}

// ---- products ----

// Products lists every product matching scopes, priced, in id order.
func (s *CatalogService) Products(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]projector.ProductRow, error) {
	var rows []projector.ProductRow
	if err := projector.Products(s.db.WithContext(ctx)).Scopes(scopes...).Order("products.id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return projector.Priced(rows), nil
}

func (s *CatalogService) Product(ctx context.Context, id uint) (projector.ProductRow, error) {
	row, found, err := projector.FindProduct(s.db.WithContext(ctx), id)
	if err != nil {
		return row, err
	}
	if !found {
		return row, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return row, nil
}

// ProductModel loads the stored product, for pre-populating a partial update.
func (s *CatalogService) ProductModel(ctx context.Context, id uint) (models.Product, error) {
	p, err := repositories.New[models.Product](s.db).FindByID(ctx, id)
	if err != nil {
		return p, notFound(err, "product", id)
	}
	return p, nil
}

// CreateProduct inserts a product after checking its collection exists.
func (s *CatalogService) CreateProduct(ctx context.Context, form serializers.ProductForm) (projector.ProductRow, error) {
	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := s.applyProduct(ctx, tx, &p, form); err != nil {
			return err
		}
		if err := repositories.New[models.Product](tx).Create(ctx, &p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return projector.ProductRow{}, err
	}
	return s.Product(ctx, id)
}

// UpdateProduct writes form over product id. LastUpdate is refreshed.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, form serializers.ProductForm) (projector.ProductRow, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.New[models.Product](tx)
		p, err := repo.FindByID(ctx, id)
		if err != nil {
			return notFound(err, "product", id)
		}
		if err := s.applyProduct(ctx, tx, &p, form); err != nil {
			return err
		}
		if err := repo.Update(ctx, &p); err != nil {
			return fmt.Errorf("update product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return projector.ProductRow{}, err
	}
	return s.Product(ctx, id)
}

func (s *CatalogService) applyProduct(ctx context.Context, tx *gorm.DB, p *models.Product, form serializers.ProductForm) error {
	errs := validate.Errors{}
	collectionID, err := resolveRef[models.Collection](ctx, tx, s.routes, form.Collection, RouteCollection, "collection", errs)
	if err != nil {
		return err
	}
	if validate.HasErrors(errs) {
		return invalid(errs)
	}

	p.Title = serializers.Str(form.Title)
	if form.Description != nil {
		p.Description = *form.Description
	}
	if form.Price != nil {
		p.Price = *form.Price
	}
	if form.Inventory != nil {
		p.Inventory = *form.Inventory
	}
	p.CollectionID = collectionID
	return nil
}

// DeleteProduct removes a product and its reviews. A product that order
// items still reference is protected.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repositories.New[models.Product](tx).FindByID(ctx, id)
		if err != nil {
			return notFound(err, "product", id)
		}

		items, err := repositories.New[models.OrderItem](tx).Count(ctx, whereEq("product_id", id))
		if err != nil {
			return fmt.Errorf("count order items: %w", err)
		}
		if items > 0 {
			return &ProtectedError{Model: "product", Name: p.Title, Related: "order items", Count: items}
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews of product %d: %w", id, err)
		}
		if _, err := repositories.New[models.Product](tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return nil
	})
}

// ClearInventory sets inventory to 0 on every product matched by scope and
// returns how many products matched. Only the inventory column is written.
func (s *CatalogService) ClearInventory(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var matched int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Scopes(scope).Count(&matched).Error; err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if matched == 0 {
			return nil
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(&models.Product{}).Scopes(scope).
			UpdateColumn("inventory", 0).Error
	})
	if err != nil {
		return 0, fmt.Errorf("clear inventory: %w", err)
	}
	return matched, nil
}

// ---- collections ----

// Collections lists every collection with its products_count, in id order.
func (s *CatalogService) Collections(ctx context.Context) ([]projector.CollectionRow, error) {
	var rows []projector.CollectionRow
	if err := projector.Collections(s.db.WithContext(ctx)).Order("collections.id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return rows, nil
}

func (s *CatalogService) Collection(ctx context.Context, id uint) (projector.CollectionRow, error) {
	row, found, err := projector.FindCollection(s.db.WithContext(ctx), id)
	if err != nil {
		return row, err
	}
	if !found {
		return row, fmt.Errorf("collection %d: %w", id, ErrNotFound)
	}
	return row, nil
}

func (s *CatalogService) CollectionModel(ctx context.Context, id uint) (models.Collection, error) {
	c, err := repositories.New[models.Collection](s.db).FindByID(ctx, id)
	if err != nil {
		return c, notFound(err, "collection", id)
	}
	return c, nil
}

func (s *CatalogService) CreateCollection(ctx context.Context, in serializers.CollectionInput) (projector.CollectionRow, error) {
	c := models.Collection{Title: serializers.Str(in.Title)}
	if err := repositories.New[models.Collection](s.db).Create(ctx, &c); err != nil {
		return projector.CollectionRow{}, fmt.Errorf("create collection: %w", err)
	}
	return s.Collection(ctx, c.ID)
}

func (s *CatalogService) UpdateCollection(ctx context.Context, id uint, in serializers.CollectionInput) (projector.CollectionRow, error) {
	repo := repositories.New[models.Collection](s.db)
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		return projector.CollectionRow{}, notFound(err, "collection", id)
	}
	c.Title = serializers.Str(in.Title)
	if err := repo.Update(ctx, &c); err != nil {
		return projector.CollectionRow{}, fmt.Errorf("update collection %d: %w", id, err)
	}
	return s.Collection(ctx, id)
}

// DeleteCollection removes an empty collection; one that still holds
// products is protected.
func (s *CatalogService) DeleteCollection(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repositories.New[models.Collection](tx).FindByID(ctx, id)
		if err != nil {
			return notFound(err, "collection", id)
		}
		products, err := repositories.New[models.Product](tx).Count(ctx, whereEq("collection_id", id))
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if products > 0 {
			return &ProtectedError{Model: "collection", Name: c.Title, Related: "products", Count: products}
		}
		if _, err := repositories.New[models.Collection](tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete collection %d: %w", id, err)
		}
		return nil
	})
}

// InCollection narrows a product query to one collection.
func InCollection(id uint) func(*gorm.DB) *gorm.DB {
	return whereEq("products.collection_id", id)
}

func whereEq(column string, value interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

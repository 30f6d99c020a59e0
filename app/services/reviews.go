package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

type ReviewService struct {
	db     *gorm.DB
	routes *router.Router
}

func NewReviewService(db *gorm.DB, routes *router.Router) *ReviewService {
	return &ReviewService{db: db, routes: routes}
}

func (s *ReviewService) Review(ctx context.Context, id uint) (models.Review, error) {
	r, err := repositories.New[models.Review](s.db).FindByID(ctx, id)
	if err != nil {
		return r, notFound(err, "review", id)
	}
	return r, nil
}

func (s *ReviewService) Create(ctx context.Context, in serializers.ReviewInput) (models.Review, error) {
	var r models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.apply(ctx, tx, &r, in); err != nil {
			return err
		}
		return repositories.New[models.Review](tx).Create(ctx, &r)
	})
	if err != nil {
		return r, err
	}
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, id uint, in serializers.ReviewInput) (models.Review, error) {
	var r models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.New[models.Review](tx)
		var err error
		if r, err = repo.FindByID(ctx, id); err != nil {
			return notFound(err, "review", id)
		}
		if err := s.apply(ctx, tx, &r, in); err != nil {
			return err
		}
		return repo.Update(ctx, &r)
	})
	return r, err
}

// apply copies in onto r. A missing or blank date means today (UTC).
func (s *ReviewService) apply(ctx context.Context, tx *gorm.DB, r *models.Review, in serializers.ReviewInput) error {
	errs := validate.Errors{}
	productID, err := resolveRef[models.Product](ctx, tx, s.routes, in.Product, RouteProduct, "product", errs)
	if err != nil {
		return err
	}
	if validate.HasErrors(errs) {
		return invalid(errs)
	}

	r.Name = serializers.Str(in.Name)
	r.Description = serializers.Str(in.Description)
	r.ProductID = productID
	r.Date = time.Now().UTC().Truncate(24 * time.Hour)
	if d := serializers.Str(in.Date); d != "" {
		parsed, err := validate.ParseDate(d)
		if err != nil {
			return invalid(validate.Errors{"date": {"The date is not a valid date."}})
		}
		r.Date = parsed.UTC().Truncate(24 * time.Hour)
	}
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	n, err := repositories.New[models.Review](s.db).Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return nil
}

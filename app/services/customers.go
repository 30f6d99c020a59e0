package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/projector"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

func (s *CustomerService) Customer(ctx context.Context, id uint) (projector.CustomerRow, error) {
	row, found, err := projector.FindCustomer(s.db.WithContext(ctx), id)
	if err != nil {
		return row, err
	}
	if !found {
		return row, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return row, nil
}

func (s *CustomerService) CustomerModel(ctx context.Context, id uint) (models.Customer, error) {
	c, err := repositories.New[models.Customer](s.db).FindByID(ctx, id)
	if err != nil {
		return c, notFound(err, "customer", id)
	}
	return c, nil
}

func (s *CustomerService) Create(ctx context.Context, in serializers.CustomerInput) (projector.CustomerRow, error) {
	var c models.Customer
	applyCustomer(&c, in)
	if err := repositories.New[models.Customer](s.db).Create(ctx, &c); err != nil {
		return projector.CustomerRow{}, fmt.Errorf("create customer: %w", err)
	}
	return s.Customer(ctx, c.ID)
}

func (s *CustomerService) Update(ctx context.Context, id uint, in serializers.CustomerInput) (projector.CustomerRow, error) {
	repo := repositories.New[models.Customer](s.db)
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		return projector.CustomerRow{}, notFound(err, "customer", id)
	}
	applyCustomer(&c, in)
	if err := repo.Update(ctx, &c); err != nil {
		return projector.CustomerRow{}, fmt.Errorf("update customer %d: %w", id, err)
	}
	return s.Customer(ctx, id)
}

func applyCustomer(c *models.Customer, in serializers.CustomerInput) {
	c.FirstName = serializers.Str(in.FirstName)
	c.LastName = serializers.Str(in.LastName)
	if in.Email != nil {
		c.Email = *in.Email
	}
	if m := serializers.Str(in.Membership); m != "" {
		c.Membership = m
	}
	if c.Membership == "" {
		c.Membership = models.MembershipBronze
	}
}

// Delete removes a customer without orders; one with orders is protected.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := repositories.New[models.Customer](tx).FindByID(ctx, id)
		if err != nil {
			return notFound(err, "customer", id)
		}
		orders, err := repositories.New[models.Order](tx).Count(ctx, whereEq("customer_id", id))
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if orders > 0 {
			return &ProtectedError{Model: "customer", Name: c.String(), Related: "orders", Count: orders}
		}
		if _, err := repositories.New[models.Customer](tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete customer %d: %w", id, err)
		}
		return nil
	})
}

// UpdateMemberships applies the list-editable membership column. Every row
// must name an existing customer or nothing is written; errors are keyed
// rows.<i>.<field>.
func (s *CustomerService) UpdateMemberships(ctx context.Context, rows []serializers.MembershipRow) (int, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		errs := validate.Errors{}
		repo := repositories.New[models.Customer](tx)
		for i, row := range rows {
			prefix := fmt.Sprintf("rows.%d.", i)
			if row.ID == nil {
				errs.Add(prefix+"id", "The id field is required.")
				continue
			}
			ok, err := repo.Exists(ctx, *row.ID)
			if err != nil {
				return err
			}
			if !ok {
				errs.Add(prefix+"id", fmt.Sprintf("Customer with ID “%d” doesn’t exist.", *row.ID))
			}
		}
		if validate.HasErrors(errs) {
			return invalid(errs)
		}

		for _, row := range rows {
			err := tx.Model(&models.Customer{}).Where("id = ?", *row.ID).
				UpdateColumn("membership", serializers.Str(row.Membership)).Error
			if err != nil {
				return fmt.Errorf("update membership of customer %d: %w", *row.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

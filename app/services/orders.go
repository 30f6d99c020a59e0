package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/serializers"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// OrderService writes orders together with their inline items.
type OrderService struct {
	db     *gorm.DB
	routes *router.Router
}

func NewOrderService(db *gorm.DB, routes *router.Router) *OrderService {
	return &OrderService{db: db, routes: routes}
}

// Order loads an order with its items in id order.
func (s *OrderService) Order(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		First(&o, id).Error
	if err != nil {
		return o, notFound(err, "order", id)
	}
	return o, nil
}

func (s *OrderService) Create(ctx context.Context, in serializers.OrderInput) (models.Order, error) {
	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		errs := validate.Errors{}
		if err := s.apply(ctx, tx, &o, in, errs); err != nil {
			return err
		}
		// Items are checked before the order exists so a bad row writes nothing.
		plan, err := s.planItems(ctx, tx, nil, in.Items, errs)
		if err != nil {
			return err
		}
		if validate.HasErrors(errs) {
			return invalid(errs)
		}
		if err := repositories.New[models.Order](tx).Create(ctx, &o); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		id = o.ID
		return plan.run(ctx, tx, o.ID)
	})
	if err != nil {
		return models.Order{}, err
	}
	return s.Order(ctx, id)
}

func (s *OrderService) Update(ctx context.Context, id uint, in serializers.OrderInput) (models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		err := tx.Preload("Items").First(&o, id).Error
		if err != nil {
			return notFound(err, "order", id)
		}

		errs := validate.Errors{}
		if err := s.apply(ctx, tx, &o, in, errs); err != nil {
			return err
		}
		plan, err := s.planItems(ctx, tx, o.Items, in.Items, errs)
		if err != nil {
			return err
		}
		if validate.HasErrors(errs) {
			return invalid(errs)
		}

		if err := repositories.New[models.Order](tx).Update(ctx, &o); err != nil {
			return fmt.Errorf("update order %d: %w", id, err)
		}
		return plan.run(ctx, tx, o.ID)
	})
	if err != nil {
		return models.Order{}, err
	}
	return s.Order(ctx, id)
}

func (s *OrderService) apply(ctx context.Context, tx *gorm.DB, o *models.Order, in serializers.OrderInput, errs validate.Errors) error {
	customerID, err := resolveRef[models.Customer](ctx, tx, s.routes, in.Customer, RouteCustomer, "customer", errs)
	if err != nil {
		return err
	}
	o.CustomerID = customerID
	if st := serializers.Str(in.PaymentStatus); st != "" {
		o.PaymentStatus = st
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}
	return nil
}

type itemPlan struct {
	create []models.OrderItem
	update []models.OrderItem
	remove []uint
}

// planItems binds every inline row and decides what to write. Rows that
// name an existing item are bound over that item, so omitted keys keep
// their stored values. Errors are keyed items.<i>.<field>.
func (s *OrderService) planItems(ctx context.Context, tx *gorm.DB, existing []models.OrderItem, raws []json.RawMessage, errs validate.Errors) (*itemPlan, error) {
	byID := make(map[uint]models.OrderItem, len(existing))
	for _, it := range existing {
		byID[it.ID] = it
	}

	plan := &itemPlan{}
	for i, raw := range raws {
		prefix := fmt.Sprintf("items.%d.", i)

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			errs.Add(fmt.Sprintf("items.%d", i), "Invalid data. Expected a dictionary.")
			continue
		}
		var head struct {
			ID *uint `json:"id"`
		}
		if idErrs := bind.Fields(fields, &head); validate.HasErrors(idErrs) {
			errs.Merge(prefix, idErrs)
			continue
		}

		var in serializers.OrderItemInput
		var stored models.OrderItem
		if head.ID != nil {
			var ok bool
			if stored, ok = byID[*head.ID]; !ok {
				errs.Add(prefix+"id", "Select a valid choice. That choice is not one of the available choices.")
				continue
			}
			price := stored.UnitPrice
			quantity := stored.Quantity
			in = serializers.OrderItemInput{
				ID:        head.ID,
				Product:   serializers.IDRef(stored.ProductID),
				Quantity:  &quantity,
				UnitPrice: &price,
			}
		}

		rowErrs, err := bind.Bytes(raw, &in)
		if err != nil {
			return nil, err
		}
		if in.Delete {
			if head.ID != nil {
				plan.remove = append(plan.remove, *head.ID)
			}
			continue
		}
		if validate.HasErrors(rowErrs) {
			errs.Merge(prefix, rowErrs)
			continue
		}

		productErrs := validate.Errors{}
		productID, err := resolveRef[models.Product](ctx, tx, s.routes, in.Product, RouteProduct, "product", productErrs)
		if err != nil {
			return nil, err
		}
		if validate.HasErrors(productErrs) {
			errs.Merge(prefix, productErrs)
			continue
		}

		item := stored
		item.ProductID = productID
		item.Quantity = *in.Quantity
		switch {
		case in.UnitPrice != nil:
			item.UnitPrice = *in.UnitPrice
		case head.ID == nil || stored.ProductID != productID:
			// Unit price defaults to the product's current price.
			var p models.Product
			if err := tx.Select("price").First(&p, productID).Error; err != nil {
				return nil, fmt.Errorf("load price of product %d: %w", productID, err)
			}
			item.UnitPrice = p.Price
		}

		if head.ID != nil {
			plan.update = append(plan.update, item)
		} else {
			plan.create = append(plan.create, item)
		}
	}
	return plan, nil
}

func (p *itemPlan) run(ctx context.Context, tx *gorm.DB, orderID uint) error {
	repo := repositories.New[models.OrderItem](tx)
	for _, id := range p.remove {
		if _, err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete order item %d: %w", id, err)
		}
	}
	for i := range p.update {
		if err := repo.Update(ctx, &p.update[i]); err != nil {
			return fmt.Errorf("update order item %d: %w", p.update[i].ID, err)
		}
	}
	for i := range p.create {
		p.create[i].OrderID = orderID
		if err := repo.Create(ctx, &p.create[i]); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

// Delete removes an order and its items.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repositories.New[models.Order](tx).Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("delete items of order %d: %w", id, err)
		}
		if _, err := repositories.New[models.Order](tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete order %d: %w", id, err)
		}
		return nil
	})
}

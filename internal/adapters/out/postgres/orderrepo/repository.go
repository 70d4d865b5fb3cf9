package orderrepo

import (
	"context"
	"errors"

	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository on db, which is either the pool
// or an open transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add archives an accepted order. An invoice is written once; a duplicate
// insert fails with the driver's unique violation.
func (r *GormOrderRepository) Add(ctx context.Context, result *order.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	dto := fromDomain(result)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get loads an archived order by invoice id.
func (r *GormOrderRepository) Get(ctx context.Context, invoice string) (*order.Result, error) {
	if invoice == "" {
		return nil, errs.NewValueIsRequiredError("invoice")
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "invoice = ?", invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", invoice)
		}
		return nil, err
	}

	return toDomain(dto)
}

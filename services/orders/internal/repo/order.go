package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/compras-io/compras/services/orders/internal/models"
	"github.com/compras-io/compras/services/orders/internal/service"
)

// GormStore implements service.OrderStore on top of GORM.
type GormStore struct {
	DB *gorm.DB
}

var _ service.OrderStore = (*GormStore)(nil)

// SaveOrder writes only the order row; lines are persisted explicitly via
// SaveLine, never as a side effect of saving the parent.
func (r *GormStore) SaveOrder(ctx context.Context, order *models.PurchaseOrder) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *GormStore) FindOrderByID(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	order := models.PurchaseOrder{}
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormStore) ListOrders(ctx context.Context, limit int) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.DB.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes the order and all of its lines in one transaction, so
// the cascade does not depend on the schema carrying the foreign key.
func (r *GormStore) DeleteOrder(ctx context.Context, order *models.PurchaseOrder) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.PurchaseOrder{}, order.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d", service.ErrNotFound, order.ID)
		}
		return nil
	})
}

func (r *GormStore) OrderExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.PurchaseOrder{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormStore) SaveLine(ctx context.Context, line *models.OrderLine) error {
	return r.DB.WithContext(ctx).Save(line).Error
}

func (r *GormStore) FindLineByID(ctx context.Context, id uint) (*models.OrderLine, error) {
	line := models.OrderLine{}
	if err := r.DB.WithContext(ctx).First(&line, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: line %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return &line, nil
}

func (r *GormStore) FindLinesByOrderID(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *GormStore) DeleteLine(ctx context.Context, line *models.OrderLine) error {
	res := r.DB.WithContext(ctx).Delete(&models.OrderLine{}, line.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: line %d", service.ErrNotFound, line.ID)
	}
	return nil
}

func (r *GormStore) Transact(ctx context.Context, fn func(service.OrderStore) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

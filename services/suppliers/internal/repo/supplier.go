package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/compras-io/compras/services/suppliers/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	supplier := models.Supplier{}
	if err := r.DB.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListSuppliers returns every supplier ordered by name. Inactive
// suppliers stay visible so they can be edited and re-activated.
func (r *GormRepo) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.DB.WithContext(ctx).
		Order("name ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormRepo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.DB.WithContext(ctx).Create(supplier).Error
}

func (r *GormRepo) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.DB.WithContext(ctx).Save(supplier).Error
}

func (r *GormRepo) DeleteSupplier(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/compras-io/compras/services/products/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActiveProducts returns active products, optionally filtered by
// supplier (supplierID == 0 means no filter).
func (r *GormRepo) ListActiveProducts(ctx context.Context, supplierID uint) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("active = ?", true)
	if supplierID != 0 {
		q = q.Where("supplier_id = ?", supplierID)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

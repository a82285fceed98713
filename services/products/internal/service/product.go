package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/compras-io/compras/services/products/internal/models"
	"github.com/compras-io/compras/services/products/internal/repo"
	"github.com/compras-io/compras/services/products/internal/transport"
)

var ErrValidation = errors.New("validation") // 400

type ProductService struct {
	Repo *repo.GormRepo
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context, supplierID uint) ([]models.Product, error) {
	return s.Repo.ListActiveProducts(ctx, supplierID)
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.SaveProductRequest) (*models.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &models.Product{
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
		SupplierID:    req.SupplierID,
		Active:        active,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req transport.SaveProductRequest) (*models.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.UnitPrice = req.UnitPrice
	product.PurchasePrice = req.PurchasePrice
	product.Stock = req.Stock
	product.SupplierID = req.SupplierID
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

func validate(req transport.SaveProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: nombre required", ErrValidation)
	}
	if req.UnitPrice.IsNegative() || req.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: prices must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if req.SupplierID == 0 {
		return fmt.Errorf("%w: proveedorId required", ErrValidation)
	}
	return nil
}

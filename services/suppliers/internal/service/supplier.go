package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/compras-io/compras/services/suppliers/internal/models"
	"github.com/compras-io/compras/services/suppliers/internal/repo"
	"github.com/compras-io/compras/services/suppliers/internal/transport"
)

var ErrValidation = errors.New("validation") // 400

type SupplierService struct {
	Repo *repo.GormRepo
}

func (s *SupplierService) GetSupplier(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.Repo.GetSupplier(ctx, id)
}

func (s *SupplierService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.Repo.ListSuppliers(ctx)
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req transport.SaveSupplierRequest) (*models.Supplier, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	supplier := &models.Supplier{
		Name:    req.Name,
		RUC:     req.RUC,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  active,
	}
	if err := s.Repo.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id uint, req transport.SaveSupplierRequest) (*models.Supplier, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	supplier, err := s.Repo.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.RUC = req.RUC
	supplier.Address = req.Address
	supplier.Phone = req.Phone
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := s.Repo.SaveSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) DeleteSupplier(ctx context.Context, id uint) error {
	return s.Repo.DeleteSupplier(ctx, id)
}

func validate(req transport.SaveSupplierRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: nombre required", ErrValidation)
	}
	if req.RUC == "" {
		return fmt.Errorf("%w: ruc required", ErrValidation)
	}
	return nil
}

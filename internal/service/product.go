package service

import (
	"context"
	"fmt"

	"rentio-backend/internal/domain"
	"rentio-backend/internal/logger"
	"rentio-backend/internal/repository"
)

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if p.PricePerDayCents <= 0 {
		return fmt.Errorf("%w: price per day must be positive", domain.ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	return s.store.Products().Create(ctx, p)
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, p *domain.Product) error {
	if p.PricePerDayCents <= 0 {
		return fmt.Errorf("%w: price per day must be positive", domain.ErrInvalidInput)
	}
	return s.store.Products().Update(ctx, p)
}

func (s *productService) List(ctx context.Context, page, pageSize int32) ([]domain.Product, int32, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.store.Products().List(ctx, page, pageSize)
}

// AdjustStock reconciles the total owned units; the available counter
// moves by the same delta inside the repository.
func (s *productService) AdjustStock(ctx context.Context, id string, newStock int32) (*domain.Product, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidInput)
	}
	return s.store.Products().AdjustTotalStock(ctx, id, newStock)
}

func (s *productService) SetRentable(ctx context.Context, id string, rentable bool) error {
	return s.store.Products().SetRentable(ctx, id, rentable)
}

// Reconcile reads the counters and the rental count in one transaction
// so the comparison sees a consistent snapshot. Non-zero drift means a
// unit left the counters without a rental holding it (or vice versa).
func (s *productService) Reconcile(ctx context.Context, id string) (*StockReport, error) {
	var report *StockReport
	err := s.store.Transact(ctx, func(tx repository.Store) error {
		product, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		holding, err := tx.Rentals().CountActiveByProduct(ctx, id)
		if err != nil {
			return err
		}

		reserved := product.Stock - product.AvailableStock
		report = &StockReport{
			ProductID:      product.ID,
			Stock:          product.Stock,
			AvailableStock: product.AvailableStock,
			ReservedUnits:  reserved,
			HoldingRentals: holding,
			Drift:          reserved - holding,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Drift != 0 {
		logger.Warn("Stock counters out of step with rentals",
			"product_id", report.ProductID,
			"reserved_units", report.ReservedUnits,
			"holding_rentals", report.HoldingRentals,
			"drift", report.Drift)
	}
	return report, nil
}

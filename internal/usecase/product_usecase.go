package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	ListCatalog() (*domain.Store, error)
	GetProductByID(id int) (*domain.Product, error)
	CreateProduct(req domain.CreateProductRequest) (*domain.Product, error)
	UpdateStock(id int, req domain.UpdateStockRequest) (*domain.StockResponse, error)
	DeleteProduct(id int) (*domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		log:         logger,
	}
}

func (uc *productUseCase) ListCatalog() (*domain.Store, error) {
	store, err := uc.productRepo.ListCatalog()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list catalog: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(store.Products))
	return store, nil
}

func (uc *productUseCase) GetProductByID(id int) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return nil, fmt.Errorf("product id must be positive: %w", domain.ErrValidation)
	}
	return uc.productRepo.GetProductByID(id)
}

func (uc *productUseCase) CreateProduct(req domain.CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty name")
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if req.Price == nil {
		uc.log.Warnf("Use Case: Attempted to create product '%s' without price", name)
		return nil, fmt.Errorf("price is required: %w", domain.ErrValidation)
	}
	if *req.Price < 0 || math.IsNaN(*req.Price) || math.IsInf(*req.Price, 0) {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with invalid price: %f", name, *req.Price)
		return nil, fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}

	stock := 0
	if req.Stock != nil {
		s, err := wholeNonNegative("stock", *req.Stock)
		if err != nil {
			uc.log.Warnf("Use Case: Invalid stock for product '%s': %v", name, err)
			return nil, err
		}
		stock = s
	}
	if req.ID != nil && *req.ID <= 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with invalid ID %d", name, *req.ID)
		return nil, fmt.Errorf("id must be positive: %w", domain.ErrValidation)
	}

	input := domain.ProductInput{
		ID:       req.ID,
		Name:     name,
		Price:    *req.Price,
		Category: strings.TrimSpace(req.Category),
		Brand:    strings.TrimSpace(req.Brand),
		Image:    strings.TrimSpace(req.Image),
		Stock:    stock,
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", name)
	created, err := uc.productRepo.CreateProduct(input)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", name, err)
		return nil, err
	}
	return created, nil
}

func (uc *productUseCase) UpdateStock(id int, req domain.UpdateStockRequest) (*domain.StockResponse, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted stock update with invalid product ID: %d", id)
		return nil, fmt.Errorf("product id must be positive: %w", domain.ErrValidation)
	}
	if req.Stock == nil {
		uc.log.Warnf("Use Case: Stock update for product ID %d without stock value", id)
		return nil, fmt.Errorf("stock is required: %w", domain.ErrValidation)
	}
	stock, err := wholeNonNegative("stock", *req.Stock)
	if err != nil {
		uc.log.Warnf("Use Case: Invalid stock for product ID %d: %v", id, err)
		return nil, err
	}

	updated, err := uc.productRepo.UpdateStock(id, stock)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to update stock for product ID %d: %v", id, err)
		return nil, err
	}
	return &domain.StockResponse{ID: updated.ID, Stock: updated.Stock}, nil
}

func (uc *productUseCase) DeleteProduct(id int) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid product ID: %d", id)
		return nil, fmt.Errorf("product id must be positive: %w", domain.ErrValidation)
	}
	removed, err := uc.productRepo.DeleteProduct(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return removed, nil
}

func wholeNonNegative(field string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("%s must be a whole number: %w", field, domain.ErrValidation)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s cannot be negative: %w", field, domain.ErrValidation)
	}
	if value > math.MaxInt32 {
		return 0, fmt.Errorf("%s is too large: %w", field, domain.ErrValidation)
	}
	return int(value), nil
}

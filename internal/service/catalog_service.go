package service

import (
	"errors"
	"fmt"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"
	"go-eternos-store/internal/ws"
	"go-eternos-store/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrProductNotFound = errors.New("product not found")
)

type CatalogService interface {
	CreateProduct(req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	ListShop() ([]model.Product, error)
	ListInventory() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"decimal_gte0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url"`
}

// UpdateProductRequest merges only the fields that are present
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,decimal_gte0"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"image_url"`
}

type catalogService struct {
	productRepo repository.ProductRepository
	exporter    ExportTrigger
	hub         *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, exporter ExportTrigger, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		exporter:    exporter,
		hub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.triggerExport()
	s.broadcast("product_created", product)
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.triggerExport()
	s.broadcast("product_updated", product)
	return product, nil
}

// DeleteProduct hard-deletes the row. Historical snapshots in sales and
// orders keep their own copies, so a dangling product id there is fine.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		return ErrProductNotFound
	}

	s.triggerExport()
	s.broadcast("product_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *catalogService) ListShop() ([]model.Product, error) {
	return s.productRepo.FindInStock()
}

func (s *catalogService) ListInventory() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) triggerExport() {
	if s.exporter != nil {
		s.exporter.Trigger()
	}
}

func (s *catalogService) broadcast(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.BroadcastEvent(event, payload)
	}
}

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
	"gorm.io/gorm"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSaleNotFound      = errors.New("sale not found")
)

type SaleService interface {
	CreateSale(actorID uuid.UUID, req *CreateSaleRequest) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	Items []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
	Total decimal.Decimal   `json:"total" validate:"decimal_gte0"`
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	exporter    ExportTrigger
	hub         *ws.Hub
}

func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, db *gorm.DB, exporter ExportTrigger, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		db:          db,
		exporter:    exporter,
		hub:         hub,
	}
}

// CreateSale validates every line before touching stock, then applies all
// decrements and persists the sale in one transaction. Any failing line
// rolls the whole sale back.
func (s *saleService) CreateSale(actorID uuid.UUID, req *CreateSaleRequest) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	var sale *model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		snapshot := make(model.LineItems, 0, len(req.Items))

		// Check all lines first
		for _, line := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				return ErrProductNotFound
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}
			snapshot = append(snapshot, model.LineItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
			})
		}

		// Then apply all decrements. The guarded update catches a competing
		// sale that slipped in between check and decrement.
		for i, line := range req.Items {
			ok, err := s.productRepo.DecrementStock(tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, snapshot[i].ProductName)
			}
		}

		sale = &model.Sale{
			UserID:      actorID,
			TotalAmount: req.Total,
			Items:       snapshot,
		}
		return tx.Create(sale).Error
	})

	if err != nil {
		return nil, err
	}

	if s.exporter != nil {
		s.exporter.Trigger()
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("sale_created", map[string]interface{}{
			"sale_id": sale.ID,
			"total":   sale.TotalAmount,
			"items":   sale.Items,
		})
	}

	return sale, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

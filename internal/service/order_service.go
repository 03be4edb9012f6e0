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

var ErrEmptyCart = errors.New("cart is empty")

type OrderService interface {
	Checkout(userID uuid.UUID, req *CheckoutRequest) (*model.Order, error)
	GetOrdersByUser(userID uuid.UUID) ([]model.Order, error)
}

type CheckoutRequest struct {
	PaymentMethod string          `json:"payment_method" validate:"required"`
	Total         decimal.Decimal `json:"total" validate:"decimal_gte0"`
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
	exporter    ExportTrigger
	hub         *ws.Hub
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, db *gorm.DB, exporter ExportTrigger, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		db:          db,
		exporter:    exporter,
		hub:         hub,
	}
}

// Checkout converts the user's cart into an order inside one transaction:
// validate every line, decrement stock, snapshot the lines with their unit
// prices, clear the cart. Any failing line rolls everything back.
func (s *orderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	var order *model.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []model.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Order("created_at ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		snapshot := make(model.LineItems, 0, len(cartItems))
		for _, item := range cartItems {
			if item.Product.Stock < item.Quantity {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, item.Product.Name)
			}
			snapshot = append(snapshot, model.LineItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.Product.Price,
			})
		}

		for i, item := range cartItems {
			ok, err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, snapshot[i].ProductName)
			}
		}

		status := model.OrderStatusPending
		if req.PaymentMethod == model.PaymentCashOnDelivery {
			status = model.OrderStatusCompleted
		}

		order = &model.Order{
			UserID:        userID,
			TotalAmount:   req.Total,
			PaymentMethod: req.PaymentMethod,
			Items:         snapshot,
			Status:        status,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return s.cartRepo.DeleteByUser(tx, userID)
	})

	if err != nil {
		return nil, err
	}

	if s.exporter != nil {
		s.exporter.Trigger()
	}
	if s.hub != nil {
		s.hub.BroadcastEvent("order_created", map[string]interface{}{
			"order_id": order.ID,
			"status":   order.Status,
			"total":    order.TotalAmount,
			"items":    order.Items,
		})
	}

	return order, nil
}

func (s *orderService) GetOrdersByUser(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

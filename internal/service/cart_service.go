package service

import (
	"errors"
	"fmt"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"
	"go-eternos-store/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotCartOwner     = errors.New("cart item belongs to another user")
)

type CartService interface {
	AddToCart(userID uuid.UUID, req *AddToCartRequest) (*model.CartItem, error)
	RemoveFromCart(userID, cartItemID uuid.UUID) error
	ViewCart(userID uuid.UUID) ([]model.CartItem, error)
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart merges quantity into an existing (user, product) line or creates
// one. Stock is not checked here; checkout validates it.
func (s *cartService) AddToCart(userID uuid.UUID, req *AddToCartRequest) (*model.CartItem, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	// The product must at least exist
	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, req.ProductID)
	if err == nil {
		existing.Quantity += req.Quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveFromCart(userID, cartItemID uuid.UUID) error {
	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		return ErrCartItemNotFound
	}
	if item.UserID != userID {
		return ErrNotCartOwner
	}
	return s.cartRepo.Delete(cartItemID)
}

func (s *cartService) ViewCart(userID uuid.UUID) ([]model.CartItem, error) {
	return s.cartRepo.FindByUser(userID)
}

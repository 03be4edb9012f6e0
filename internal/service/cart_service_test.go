package service_test

import (
	"errors"
	"testing"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/service"

	"github.com/google/uuid"
)

func TestAddToCartMergesRepeatAdds(t *testing.T) {
	env := newTestEnv(t)
	cart := service.NewCartService(env.carts, env.products)

	user := env.createUser(t, "alice", model.RoleCustomer)
	product := env.createProduct(t, "Shirt", 20, 10)

	if _, err := cart.AddToCart(user.ID, &service.AddToCartRequest{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := cart.AddToCart(user.ID, &service.AddToCartRequest{ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items, err := cart.ViewCart(user.ID)
	if err != nil {
		t.Fatalf("view cart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("cart has %d rows, want 1 merged row", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", items[0].Quantity)
	}
	if items[0].Product.Name != "Shirt" {
		t.Errorf("joined product name = %q, want %q", items[0].Product.Name, "Shirt")
	}
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv(t)
	cart := service.NewCartService(env.carts, env.products)

	user := env.createUser(t, "bob", model.RoleCustomer)
	product := env.createProduct(t, "Socks", 5, 10)

	item, err := cart.AddToCart(user.ID, &service.AddToCartRequest{ProductID: product.ID})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	cart := service.NewCartService(env.carts, env.products)

	user := env.createUser(t, "carol", model.RoleCustomer)

	_, err := cart.AddToCart(user.ID, &service.AddToCartRequest{ProductID: uuid.New(), Quantity: 1})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestRemoveFromCartOwnership(t *testing.T) {
	env := newTestEnv(t)
	cart := service.NewCartService(env.carts, env.products)

	owner := env.createUser(t, "owner", model.RoleCustomer)
	intruder := env.createUser(t, "intruder", model.RoleCustomer)
	product := env.createProduct(t, "Belt", 12, 4)

	item, err := cart.AddToCart(owner.ID, &service.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := cart.RemoveFromCart(intruder.ID, item.ID); !errors.Is(err, service.ErrNotCartOwner) {
		t.Errorf("foreign remove err = %v, want ErrNotCartOwner", err)
	}
	if err := cart.RemoveFromCart(owner.ID, uuid.New()); !errors.Is(err, service.ErrCartItemNotFound) {
		t.Errorf("missing item err = %v, want ErrCartItemNotFound", err)
	}

	if err := cart.RemoveFromCart(owner.ID, item.ID); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	items, _ := cart.ViewCart(owner.ID)
	if len(items) != 0 {
		t.Errorf("cart has %d rows after remove, want 0", len(items))
	}
}

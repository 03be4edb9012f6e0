package service_test

import (
	"errors"
	"testing"

	"go-eternos-store/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	catalog := service.NewCatalogService(env.products, nil, nil)

	_, err := catalog.CreateProduct(&service.CreateProductRequest{
		Price: decimal.NewFromInt(10),
		Stock: 5,
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("missing name err = %v, want ErrValidation", err)
	}

	_, err = catalog.CreateProduct(&service.CreateProductRequest{
		Name:  "Shirt",
		Price: decimal.NewFromInt(-5),
		Stock: 5,
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("negative price err = %v, want ErrValidation", err)
	}

	_, err = catalog.CreateProduct(&service.CreateProductRequest{
		Name:  "Shirt",
		Price: decimal.NewFromInt(5),
		Stock: -1,
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("negative stock err = %v, want ErrValidation", err)
	}
}

func TestUpdateProductMergesPartialFields(t *testing.T) {
	env := newTestEnv(t)
	catalog := service.NewCatalogService(env.products, nil, nil)

	created, err := catalog.CreateProduct(&service.CreateProductRequest{
		Name:     "Jacket",
		Price:    decimal.NewFromInt(80),
		Stock:    3,
		Category: "outerwear",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := decimal.NewFromInt(60)
	updated, err := catalog.UpdateProduct(created.ID, &service.UpdateProductRequest{
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.Price.Equal(newPrice) {
		t.Errorf("price = %s, want %s", updated.Price, newPrice)
	}
	if updated.Name != "Jacket" {
		t.Errorf("name = %q, want untouched %q", updated.Name, "Jacket")
	}
	if updated.Category != "outerwear" {
		t.Errorf("category = %q, want untouched %q", updated.Category, "outerwear")
	}
	if updated.Stock != 3 {
		t.Errorf("stock = %d, want untouched 3", updated.Stock)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	catalog := service.NewCatalogService(env.products, nil, nil)

	name := "Ghost"
	_, err := catalog.UpdateProduct(uuid.New(), &service.UpdateProductRequest{Name: &name})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	catalog := service.NewCatalogService(env.products, nil, nil)

	product := env.createProduct(t, "Hat", 15, 10)

	if err := catalog.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := catalog.DeleteProduct(product.ID); !errors.Is(err, service.ErrProductNotFound) {
		t.Errorf("second delete err = %v, want ErrProductNotFound", err)
	}
}

func TestListShopFiltersOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	catalog := service.NewCatalogService(env.products, nil, nil)

	env.createProduct(t, "Available", 10, 5)
	env.createProduct(t, "SoldOut", 10, 0)

	shop, err := catalog.ListShop()
	if err != nil {
		t.Fatalf("list shop: %v", err)
	}
	if len(shop) != 1 || shop[0].Name != "Available" {
		t.Errorf("shop listing = %+v, want only the in-stock product", shop)
	}

	inventory, err := catalog.ListInventory()
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(inventory) != 2 {
		t.Errorf("inventory listing has %d products, want 2", len(inventory))
	}
}

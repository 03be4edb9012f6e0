package service_test

import (
	"bytes"
	"errors"
	"testing"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestReceiptNotFound(t *testing.T) {
	env := newTestEnv(t)
	receipts := service.NewReceiptService(env.sales)

	_, err := receipts.Generate(uuid.New())
	if !errors.Is(err, service.ErrSaleNotFound) {
		t.Errorf("err = %v, want ErrSaleNotFound", err)
	}
}

func TestReceiptRendersFromSnapshot(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)
	receipts := service.NewReceiptService(env.sales)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	product := env.createProduct(t, "A very long product name that exceeds the thirty character receipt column", 25, 10)

	sale, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: product.ID, Quantity: 2}},
		Total: decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("sale: %v", err)
	}

	pdf, err := receipts.Generate(sale.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
	if len(pdf) < 500 {
		t.Errorf("pdf is suspiciously small: %d bytes", len(pdf))
	}
}

func TestReceiptSurvivesProductDeletion(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)
	receipts := service.NewReceiptService(env.sales)
	catalog := service.NewCatalogService(env.products, nil, nil)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	product := env.createProduct(t, "Ephemeral", 30, 2)

	sale, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: product.ID, Quantity: 1}},
		Total: decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("sale: %v", err)
	}

	// The snapshot owns its data; deleting the product must not break the receipt
	if err := catalog.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	pdf, err := receipts.Generate(sale.ID)
	if err != nil {
		t.Fatalf("generate after delete: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

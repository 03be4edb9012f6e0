package service_test

import (
	"errors"
	"strings"
	"testing"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newSaleService(env *testEnv) service.SaleService {
	return service.NewSaleService(env.sales, env.products, env.db, nil, nil)
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	product := env.createProduct(t, "Coat", 50, 5)

	sale, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: product.ID, Quantity: 5}},
		Total: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("sale: %v", err)
	}
	if got := env.productStock(t, product.ID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	if len(sale.Items) != 1 {
		t.Fatalf("snapshot has %d entries, want 1", len(sale.Items))
	}
	if !sale.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)) {
		t.Errorf("snapshot unit price = %s, want 50", sale.Items[0].UnitPrice)
	}

	// Stock is exhausted; the next sale must fail by name
	_, err = sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: product.ID, Quantity: 1}},
		Total: decimal.NewFromInt(50),
	})
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if !strings.Contains(err.Error(), "Coat") {
		t.Errorf("error %q does not name the product", err)
	}
}

func TestCreateSaleRollsBackOnAnyLineFailure(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	plenty := env.createProduct(t, "Plenty", 10, 10)
	scarce := env.createProduct(t, "Scarce", 10, 1)

	_, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{
			{ProductID: plenty.ID, Quantity: 3},
			{ProductID: scarce.ID, Quantity: 2},
		},
		Total: decimal.NewFromInt(50),
	})
	if !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}

	if got := env.productStock(t, plenty.ID); got != 10 {
		t.Errorf("Plenty stock = %d, want 10 after rollback", got)
	}
	var count int64
	env.db.Model(&model.Sale{}).Count(&count)
	if count != 0 {
		t.Errorf("sales created = %d, want 0", count)
	}
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)

	admin := env.createUser(t, "admin", model.RoleAdmin)

	_, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: uuid.New(), Quantity: 1}},
		Total: decimal.NewFromInt(10),
	})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)

	admin := env.createUser(t, "admin", model.RoleAdmin)
	product := env.createProduct(t, "Coat", 50, 5)

	_, err := sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{},
		Total: decimal.NewFromInt(0),
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("empty items err = %v, want ErrValidation", err)
	}

	_, err = sales.CreateSale(admin.ID, &service.CreateSaleRequest{
		Items: []service.SaleLineRequest{{ProductID: product.ID, Quantity: 0}},
		Total: decimal.NewFromInt(0),
	})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("zero quantity err = %v, want ErrValidation", err)
	}
}

func TestGetSaleByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	sales := newSaleService(env)

	if _, err := sales.GetSaleByID(uuid.New()); !errors.Is(err, service.ErrSaleNotFound) {
		t.Errorf("err = %v, want ErrSaleNotFound", err)
	}
}

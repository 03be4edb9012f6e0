package service_test

import (
	"path/filepath"
	"testing"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/service"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

func TestExportAllWritesWorkbook(t *testing.T) {
	env := newTestEnv(t)

	user := env.createUser(t, "alice", model.RoleCustomer)
	env.createProduct(t, "Shirt", 20, 7)

	sale := &model.Sale{
		UserID:      user.ID,
		TotalAmount: decimal.NewFromInt(40),
		Items: model.LineItems{
			{ProductID: user.ID, ProductName: "Shirt", Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
		},
	}
	if err := env.db.Create(sale).Error; err != nil {
		t.Fatalf("create sale: %v", err)
	}
	order := &model.Order{
		UserID:        user.ID,
		TotalAmount:   decimal.NewFromInt(20),
		PaymentMethod: model.PaymentCashOnDelivery,
		Status:        model.OrderStatusCompleted,
	}
	if err := env.db.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	exporter := service.NewExportService(env.users, env.products, env.sales, env.orders, path)

	if err := exporter.ExportAll(); err != nil {
		t.Fatalf("export: %v", err)
	}

	file, err := xlsx.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}

	wantSheets := []string{"Users", "Products", "Sales", "Orders"}
	if len(file.Sheets) != len(wantSheets) {
		t.Fatalf("workbook has %d sheets, want %d", len(file.Sheets), len(wantSheets))
	}
	for i, name := range wantSheets {
		if file.Sheets[i].Name != name {
			t.Errorf("sheet[%d] = %q, want %q", i, file.Sheets[i].Name, name)
		}
		// Header row plus exactly one data row per seeded entity
		if file.Sheets[i].MaxRow != 2 {
			t.Errorf("sheet %q has %d rows, want 2", name, file.Sheets[i].MaxRow)
		}
	}

	products := file.Sheet["Products"]
	if got := products.Rows[1].Cells[1].String(); got != "Shirt" {
		t.Errorf("product name cell = %q, want %q", got, "Shirt")
	}
	if got := products.Rows[1].Cells[2].String(); got != "20.00" {
		t.Errorf("product price cell = %q, want %q", got, "20.00")
	}

	// Overwrite on re-export
	if err := exporter.ExportAll(); err != nil {
		t.Fatalf("second export: %v", err)
	}
	if _, err := xlsx.OpenFile(path); err != nil {
		t.Fatalf("reopen after overwrite: %v", err)
	}
}

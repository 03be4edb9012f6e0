package service_test

import (
	"testing"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	sales    repository.SaleRepository
	orders   repository.OrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A single connection keeps every session on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.CartItem{}, &model.Sale{}, &model.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &testEnv{
		db:       db,
		users:    repository.NewUserRepo(db),
		products: repository.NewProductRepo(db),
		carts:    repository.NewCartRepo(db),
		sales:    repository.NewSaleRepo(db),
		orders:   repository.NewOrderRepo(db),
	}
}

func (e *testEnv) createUser(t *testing.T, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	if err := user.SetPassword("secret1"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:  name,
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
	if err := e.products.Create(product); err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return product
}

func (e *testEnv) productStock(t *testing.T, id interface{}) int {
	t.Helper()
	var product model.Product
	if err := e.db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Stock
}

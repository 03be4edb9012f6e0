package service

import (
	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

// DashboardStats is the overview block on the admin dashboard
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	SaleRevenue    decimal.Decimal `json:"sale_revenue"`
	OrderRevenue   decimal.Decimal `json:"order_revenue"`
	PendingOrders  int64           `json:"pending_orders"`
}

type dashboardService struct {
	db        *gorm.DB
	saleRepo  repository.SaleRepository
	orderRepo repository.OrderRepository
}

func NewDashboardService(db *gorm.DB, saleRepo repository.SaleRepository, orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{
		db:        db,
		saleRepo:  saleRepo,
		orderRepo: orderRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).Where("stock < ?", 10).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * price), 0)").
		Scan(&stats.InventoryValue).Error; err != nil {
		return nil, err
	}

	var err error
	if stats.SaleRevenue, err = s.saleRepo.TotalRevenue(); err != nil {
		return nil, err
	}
	if stats.OrderRevenue, err = s.orderRepo.TotalRevenue(); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(model.OrderStatusPending); err != nil {
		return nil, err
	}

	return &stats, nil
}

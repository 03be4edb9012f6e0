package service

import (
	"io"
	"log"
	"time"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"

	"github.com/tealeg/xlsx"
)

// ExportTrigger is what the write-path services see: a non-blocking request
// for a fresh export. Failures never propagate into the business operation.
type ExportTrigger interface {
	Trigger()
}

type ExportService interface {
	ExportTrigger
	// ExportAll writes the workbook to the configured path, overwriting it
	ExportAll() error
	// WriteWorkbook streams the workbook, for download endpoints
	WriteWorkbook(w io.Writer) error
	// Start launches the debounced background worker
	Start()
}

type exportService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	orderRepo   repository.OrderRepository
	path        string
	debounce    time.Duration
	trigger     chan struct{}
}

func NewExportService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	orderRepo repository.OrderRepository,
	path string,
) ExportService {
	return &exportService{
		userRepo:    userRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		orderRepo:   orderRepo,
		path:        path,
		debounce:    2 * time.Second,
		trigger:     make(chan struct{}, 1),
	}
}

// Trigger never blocks; a pending trigger already covers this mutation
func (s *exportService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *exportService) Start() {
	go s.run()
}

// run coalesces bursts of triggers into one workbook write. Export errors
// are logged warnings; the mutation that triggered them already committed.
func (s *exportService) run() {
	for range s.trigger {
		time.Sleep(s.debounce)
		// Drain triggers that arrived during the debounce window
		for {
			select {
			case <-s.trigger:
				continue
			default:
			}
			break
		}
		if err := s.ExportAll(); err != nil {
			log.Printf("Warning: spreadsheet export failed: %v", err)
		}
	}
}

func (s *exportService) ExportAll() error {
	file, err := s.buildWorkbook()
	if err != nil {
		return err
	}
	return file.Save(s.path)
}

func (s *exportService) WriteWorkbook(w io.Writer) error {
	file, err := s.buildWorkbook()
	if err != nil {
		return err
	}
	return file.Write(w)
}

func (s *exportService) buildWorkbook() (*xlsx.File, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()

	if err := addUserSheet(file, users); err != nil {
		return nil, err
	}
	if err := addProductSheet(file, products); err != nil {
		return nil, err
	}
	if err := addSaleSheet(file, sales); err != nil {
		return nil, err
	}
	if err := addOrderSheet(file, orders); err != nil {
		return nil, err
	}

	return file, nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetValue(h)
	}
}

func addUserSheet(file *xlsx.File, users []model.User) error {
	sheet, err := file.AddSheet("Users")
	if err != nil {
		return err
	}
	addHeaderRow(sheet, "ID", "Username", "Email", "Role", "Created")
	for _, u := range users {
		row := sheet.AddRow()
		row.AddCell().SetValue(u.ID.String())
		row.AddCell().SetValue(u.Username)
		row.AddCell().SetValue(u.Email)
		row.AddCell().SetValue(u.Role)
		row.AddCell().SetValue(u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func addProductSheet(file *xlsx.File, products []model.Product) error {
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}
	addHeaderRow(sheet, "ID", "Name", "Price", "Stock", "Category")
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID.String())
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Category)
	}
	return nil
}

func addSaleSheet(file *xlsx.File, sales []model.Sale) error {
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return err
	}
	addHeaderRow(sheet, "ID", "User_ID", "Total", "Items", "Date")
	for _, s := range sales {
		items, _ := s.Items.Value()
		row := sheet.AddRow()
		row.AddCell().SetValue(s.ID.String())
		row.AddCell().SetValue(s.UserID.String())
		row.AddCell().SetValue(s.TotalAmount.StringFixed(2))
		row.AddCell().SetValue(string(items.([]byte)))
		row.AddCell().SetValue(s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func addOrderSheet(file *xlsx.File, orders []model.Order) error {
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	addHeaderRow(sheet, "ID", "User_ID", "Total", "Payment", "Status", "Date")
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID.String())
		row.AddCell().SetValue(o.UserID.String())
		row.AddCell().SetValue(o.TotalAmount.StringFixed(2))
		row.AddCell().SetValue(o.PaymentMethod)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

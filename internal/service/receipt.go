package service

import (
	"bytes"
	"fmt"

	"go-eternos-store/internal/model"
	"go-eternos-store/internal/repository"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

type ReceiptService interface {
	// Generate renders a one-page PDF receipt for a committed sale
	Generate(saleID uuid.UUID) ([]byte, error)
}

type receiptService struct {
	saleRepo repository.SaleRepository
}

func NewReceiptService(saleRepo repository.SaleRepository) ReceiptService {
	return &receiptService{saleRepo: saleRepo}
}

func (s *receiptService) Generate(saleID uuid.UUID) ([]byte, error) {
	sale, err := s.saleRepo.FindByID(saleID)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return renderReceipt(sale)
}

// Item lines come from the stored snapshot, so the receipt shows the prices
// in effect when the sale committed, not the current catalog prices.
func renderReceipt(sale *model.Sale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "ETERNOS", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Timeless Fashion - Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Sale ID: %s", sale.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", sale.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		name := item.ProductName
		if len(name) > 30 {
			name = name[:30]
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("$%s", item.UnitPrice.StringFixed(2)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("$%s", item.LineTotal().StringFixed(2)), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("TOTAL: $%s", sale.TotalAmount.StringFixed(2)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package handler

import (
	"fmt"

	"go-eternos-store/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	sales    service.SaleService
	receipts service.ReceiptService
}

func NewSaleHandler(sales service.SaleService, receipts service.ReceiptService) *SaleHandler {
	return &SaleHandler{sales: sales, receipts: receipts}
}

// Create records a point-of-sale transaction for the acting admin
// POST /api/v1/admin/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.sales.CreateSale(actorID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "sale_id": sale.ID})
}

// GET /api/v1/admin/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	sales, err := h.sales.GetAllSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GET /api/v1/admin/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.sales.GetSaleByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// Receipt streams the PDF receipt as a download
// GET /api/v1/admin/receipt/:sale_id
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	saleID, err := uuid.Parse(c.Params("sale_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	pdf, err := h.receipts.Generate(saleID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=receipt_%s.pdf", saleID))
	return c.Send(pdf)
}

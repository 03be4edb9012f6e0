package handler

import (
	"bytes"

	"go-eternos-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	exporter service.ExportService
}

func NewExportHandler(exporter service.ExportService) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Download streams the full workbook (Users, Products, Sales, Orders)
// GET /api/v1/admin/export
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.exporter.WriteWorkbook(&buf); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export workbook"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=eternos_data.xlsx")
	return c.Send(buf.Bytes())
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/bookwise/internal/services"
)

type ExportHandler struct {
	svc services.ExportService
}

func NewExportHandler(svc services.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) Orders(c *gin.Context) { h.workbook(c, h.svc.OrdersWorkbook) }

func (h *ExportHandler) Admins(c *gin.Context) { h.workbook(c, h.svc.AdminsWorkbook) }

func (h *ExportHandler) workbook(c *gin.Context, render func(context.Context) (*services.ExportFile, error)) {
	f, err := render(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+f.Filename)
	if f.URL != "" {
		c.Header("X-Export-URL", f.URL)
	}
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (h *ExportHandler) Data(c *gin.Context) {
	b, err := h.svc.Backup(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

package handlers

import (
	"net/http"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	sales *service.SaleService
}

func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

type recordSaleRequest struct {
	ClientID     string          `json:"client_id"`
	Product      string          `json:"product"`
	SaleDate     domain.Date     `json:"sale_date"`
	DeliveryDate *domain.Date    `json:"delivery_date"`
	SaleValue    decimal.Decimal `json:"sale_value"`
	Profit       decimal.Decimal `json:"profit"`
}

type resolveDeliveryRequest struct {
	Delivered    *bool            `json:"delivered"`
	DeliveryDate *domain.Date     `json:"delivery_date"`
	LossValue    *decimal.Decimal `json:"loss_value"`
}

// RecordSale handles POST /api/v1/sales. New sales start pending.
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.sales.RecordSale(c.Request.Context(), service.RecordSaleInput{
		ClientID:     req.ClientID,
		Product:      req.Product,
		SaleDate:     req.SaleDate,
		DeliveryDate: req.DeliveryDate,
		SaleValue:    req.SaleValue,
		Profit:       req.Profit,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// ResolveDelivery handles PUT /api/v1/sales/:id/delivery.
func (h *SaleHandler) ResolveDelivery(c *gin.Context) {
	var req resolveDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.Delivered == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivered is required"})
		return
	}

	sale, err := h.sales.ResolveDelivery(c.Request.Context(), c.Param("id"), service.ResolveDeliveryInput{
		Delivered:    *req.Delivered,
		DeliveryDate: req.DeliveryDate,
		LossValue:    req.LossValue,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// ListSales handles GET /api/v1/sales with optional from/to filters on the
// sale date.
func (h *SaleHandler) ListSales(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sales, err := h.sales.ListInRange(c.Request.Context(), rng.From, rng.To)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

// ListPendingSales handles GET /api/v1/sales/pending.
func (h *SaleHandler) ListPendingSales(c *gin.Context) {
	pending, err := h.sales.ListPending(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotelops/hms-backend/internal/costing"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

type InventoryHandler struct {
	inventory *postgres.InventoryRepository
}

func NewInventoryHandler(inventory *postgres.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type inventoryItemRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	CostPrice  float64 `json:"cost_price"`
	Quantity   float64 `json:"quantity"`
	Department string  `json:"department" binding:"required"`
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory payload", "details": err.Error()})
		return
	}

	if !costing.UnitKnown(req.Unit) {
		log.Warn().Str("unit", req.Unit).Str("item", req.Name).
			Msg("inventory item created with unrecognized unit, recipe costs will treat it as a count")
	}

	item := &domain.InventoryItem{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		CostPrice: req.CostPrice,
		Quantity:  req.Quantity,
		Dept:      req.Department,
	}

	if err := h.inventory.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory payload", "details": err.Error()})
		return
	}

	item := &domain.InventoryItem{
		ID:        c.Param("id"),
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		CostPrice: req.CostPrice,
		Quantity:  req.Quantity,
		Dept:      req.Department,
	}

	if err := h.inventory.Update(c.Request.Context(), item); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventory.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventory.List(c.Request.Context(), strings.TrimSpace(c.Query("department")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inventory", "details": err.Error()})
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type stockAdjustmentRequest struct {
	Delta  float64 `json:"delta" binding:"required"`
	Reason string  `json:"reason" binding:"required"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req stockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta and reason are required"})
		return
	}

	adjustment := &domain.StockAdjustment{
		ID:          uuid.NewString(),
		InventoryID: c.Param("id"),
		Delta:       req.Delta,
		Reason:      req.Reason,
	}

	if err := h.inventory.AdjustStock(c.Request.Context(), adjustment); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to adjust stock", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, adjustment)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete inventory item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inventory item deleted"})
}

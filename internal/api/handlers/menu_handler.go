package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
)

type MenuHandler struct {
	menu *postgres.MenuRepository
}

func NewMenuHandler(menu *postgres.MenuRepository) *MenuHandler {
	return &MenuHandler{menu: menu}
}

type menuItemRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Category    string                    `json:"category" binding:"required"`
	Price       float64                   `json:"price" binding:"required"`
	Department  string                    `json:"department" binding:"required"`
	Available   *bool                     `json:"available"`
	Ingredients []domain.RecipeIngredient `json:"ingredients"`
}

// validateIngredients guards the recipe invariants at the write boundary:
// every line needs an inventory reference and a positive quantity. A
// negative quantity stored here would flow through costing as a negative
// line cost and silently deflate COGS.
func validateIngredients(ingredients []domain.RecipeIngredient) error {
	for _, ing := range ingredients {
		if ing.InventoryID == "" {
			return fmt.Errorf("ingredient is missing an inventory_id")
		}
		if ing.Quantity <= 0 {
			return fmt.Errorf("ingredient %s quantity must be positive", ing.InventoryID)
		}
	}
	return nil
}

func (h *MenuHandler) Create(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item payload", "details": err.Error()})
		return
	}
	if err := validateIngredients(req.Ingredients); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	item := &domain.MenuItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Dept:        req.Department,
		Available:   true,
		Ingredients: req.Ingredients,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.menu.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create menu item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item payload", "details": err.Error()})
		return
	}
	if err := validateIngredients(req.Ingredients); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	item := &domain.MenuItem{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Dept:        req.Department,
		Available:   true,
		Ingredients: req.Ingredients,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := h.menu.Update(c.Request.Context(), item); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update menu item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.menu.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menu.List(c.Request.Context(), strings.TrimSpace(c.Query("department")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list menu items", "details": err.Error()})
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.menu.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete menu item", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

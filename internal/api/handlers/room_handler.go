package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
)

type RoomHandler struct {
	rooms *postgres.RoomRepository
}

func NewRoomHandler(rooms *postgres.RoomRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

type roomRequest struct {
	Number   string  `json:"number" binding:"required"`
	RoomType string  `json:"room_type" binding:"required"`
	Rate     float64 `json:"rate" binding:"required"`
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room payload", "details": err.Error()})
		return
	}

	room := &domain.Room{
		ID:       uuid.NewString(),
		Number:   req.Number,
		RoomType: req.RoomType,
		Rate:     req.Rate,
		Status:   "available",
	}

	if err := h.rooms.Create(c.Request.Context(), room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms", "details": err.Error()})
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms, "count": len(rooms)})
}

type checkInRequest struct {
	RoomID string `json:"room_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
}

func (h *RoomHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check-in payload", "details": err.Error()})
		return
	}

	guest := &domain.Guest{
		ID:     uuid.NewString(),
		RoomID: req.RoomID,
		Name:   req.Name,
		Phone:  req.Phone,
	}

	if err := h.rooms.CheckIn(c.Request.Context(), guest); err != nil {
		if errors.Is(err, postgres.ErrRoomUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "room is not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in guest", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, guest)
}

func (h *RoomHandler) CheckOut(c *gin.Context) {
	if err := h.rooms.CheckOut(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "guest not found or already checked out"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check out guest", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest checked out"})
}

func (h *RoomHandler) CurrentGuests(c *gin.Context) {
	guests, err := h.rooms.CurrentGuests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list current guests", "details": err.Error()})
		return
	}
	if guests == nil {
		guests = []domain.Guest{}
	}

	c.JSON(http.StatusOK, gin.H{"guests": guests, "count": len(guests)})
}

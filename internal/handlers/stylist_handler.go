package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glossbook/salon-booking/internal/cache"
	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/httpresp"
	"github.com/glossbook/salon-booking/internal/models"
)

type StylistHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
}

func NewStylistHandler(db *gorm.DB, catalog *cache.Catalog) *StylistHandler {
	return &StylistHandler{db: db, catalog: catalog}
}

// --------- Requests ---------

type StylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Specialties string `json:"specialties"`
	Active      *bool  `json:"active"`
}

// ======================================================
// LIST
// ======================================================

// List serves the stylist catalog, cached in Redis. Only active stylists
// are shown to customers.
func (h *StylistHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.catalog != nil {
		if payload, ok := h.catalog.Get(ctx, cache.KeyStylists); ok {
			c.Data(200, "application/json; charset=utf-8", payload)
			return
		}
	}

	var stylists []models.Stylist
	if err := h.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Failed to fetch stylists.")
		return
	}

	if h.catalog != nil {
		if payload, err := json.Marshal(stylists); err == nil {
			h.catalog.Set(ctx, cache.KeyStylists, payload)
		}
	}

	httpresp.OK(c, stylists)
}

// ======================================================
// CREATE
// ======================================================

func (h *StylistHandler) Create(c *gin.Context) {
	var req StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	stylist := models.Stylist{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Specialties: req.Specialties,
		Active:      true,
	}
	if req.Active != nil {
		stylist.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Failed to create stylist.")
		return
	}

	h.invalidate(c)
	c.JSON(201, stylist)
}

// ======================================================
// UPDATE
// ======================================================

func (h *StylistHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid stylist id.")
		return
	}

	var req StylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	var stylist models.Stylist
	if err := h.db.WithContext(c.Request.Context()).First(&stylist, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_stylist", "Failed to update stylist.")
		return
	}

	stylist.Name = req.Name
	stylist.Image = req.Image
	stylist.Description = req.Description
	stylist.Specialties = req.Specialties
	if req.Active != nil {
		stylist.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Failed to update stylist.")
		return
	}

	h.invalidate(c)
	httpresp.OK(c, stylist)
}

// ======================================================
// DELETE
// ======================================================

func (h *StylistHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid stylist id.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Stylist{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_stylist", "Failed to delete stylist.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return
	}

	h.invalidate(c)
	httpresp.OK(c, gin.H{"message": "Stylist deleted successfully"})
}

func (h *StylistHandler) invalidate(c *gin.Context) {
	if h.catalog != nil {
		h.catalog.Invalidate(c.Request.Context(), cache.KeyStylists)
	}
}

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

type ServiceHandler struct {
	db      *gorm.DB
	catalog *cache.Catalog
}

func NewServiceHandler(db *gorm.DB, catalog *cache.Catalog) *ServiceHandler {
	return &ServiceHandler{db: db, catalog: catalog}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

// List serves the service catalog, optionally filtered by type
// (?type=Dye). Filtered lists bypass the cache; the unfiltered list is
// what the home screen hammers.
func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	serviceType := c.Query("type")

	if serviceType == "" && h.catalog != nil {
		if payload, ok := h.catalog.Get(ctx, cache.KeyServices); ok {
			c.Data(200, "application/json; charset=utf-8", payload)
			return
		}
	}

	q := h.db.WithContext(ctx).Order("name asc")
	if serviceType != "" {
		q = q.Where("type = ?", serviceType)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to fetch services.")
		return
	}

	if serviceType == "" && h.catalog != nil {
		if payload, err := json.Marshal(services); err == nil {
			h.catalog.Set(ctx, cache.KeyServices, payload)
		}
	}

	httpresp.OK(c, services)
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, type and price are required.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Type:        req.Type,
		Image:       req.Image,
		Description: req.Description,
		Price:       req.Price,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	h.invalidate(c)
	c.JSON(201, service)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, type and price are required.")
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	service.Name = req.Name
	service.Type = req.Type
	service.Image = req.Image
	service.Description = req.Description
	service.Price = req.Price

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	h.invalidate(c)
	httpresp.OK(c, service)
}

// ======================================================
// DELETE
// ======================================================

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Failed to delete service.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	h.invalidate(c)
	httpresp.OK(c, gin.H{"message": "Service deleted successfully"})
}

func (h *ServiceHandler) invalidate(c *gin.Context) {
	if h.catalog != nil {
		h.catalog.Invalidate(c.Request.Context(), cache.KeyServices)
	}
}

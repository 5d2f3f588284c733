package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/media"
)

// MediaHandler ingests catalog photos from the admin app: the image is
// normalized to webp and stored, and the returned URL goes into the
// stylist or service record.
type MediaHandler struct {
	processor *media.Processor
	store     media.Store
}

func NewMediaHandler(processor *media.Processor, store media.Store) *MediaHandler {
	return &MediaHandler{processor: processor, store: store}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Failed to read uploaded image.")
		return
	}
	defer src.Close()

	data, err := h.processor.Process(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Uploaded file is not a supported image.")
		return
	}

	key := uuid.NewString() + ".webp"
	url, err := h.store.Save(c.Request.Context(), key, data, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Failed to store image.")
		return
	}

	c.JSON(201, gin.H{"url": url})
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/glossbook/salon-booking/internal/httperr"
	"github.com/glossbook/salon-booking/internal/httpresp"
	"github.com/glossbook/salon-booking/internal/middleware"
	"github.com/glossbook/salon-booking/internal/models"
)

type RatingHandler struct {
	db *gorm.DB
}

func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{db: db}
}

// --------- Requests ---------

type SubmitRatingRequest struct {
	TargetID   uint   `json:"targetId" binding:"required"`
	TargetType string `json:"targetType" binding:"required"`
	Stars      int    `json:"stars" binding:"required,min=1,max=5"`
	Feedback   string `json:"feedback"`
}

// ======================================================
// SUBMIT
// ======================================================

// Submit upserts the caller's rating for a target. Rating the same target
// again replaces the previous stars and feedback.
func (h *RatingHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Target and stars (1-5) are required.")
		return
	}

	rating := models.Rating{
		UserID:     userID,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		Stars:      req.Stars,
		Feedback:   req.Feedback,
	}

	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "target_id"}, {Name: "target_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "feedback", "updated_at"}),
		}).
		Create(&rating).Error
	if err != nil {
		httperr.Internal(c, "failed_to_save_rating", "Failed to save rating.")
		return
	}

	httpresp.OK(c, rating)
}

// ======================================================
// SUMMARY
// ======================================================

// Summary returns the aggregate for one target plus the caller's own
// rating, which the client uses to pre-fill the rating widget.
func (h *RatingHandler) Summary(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Query("targetId"), 10, 64)
	if err != nil || targetID == 0 {
		httperr.BadRequest(c, "invalid_target", "targetId is required.")
		return
	}
	targetType := c.Query("targetType")
	if targetType == "" {
		httperr.BadRequest(c, "invalid_target", "targetType is required.")
		return
	}

	h.summarize(c, uint(targetID), targetType)
}

// StylistSummary is the path-addressed variant for stylist profiles.
func (h *RatingHandler) StylistSummary(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid stylist id.")
		return
	}

	h.summarize(c, uint(targetID), "Stylist")
}

func (h *RatingHandler) summarize(c *gin.Context, targetID uint, targetType string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	ctx := c.Request.Context()

	var agg struct {
		Average float64
		Total   int64
	}
	err := h.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(stars), 0) as average, COUNT(*) as total").
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Scan(&agg).Error
	if err != nil {
		httperr.Internal(c, "failed_to_fetch_ratings", "Failed to fetch ratings.")
		return
	}

	resp := gin.H{
		"average":      agg.Average,
		"totalRatings": agg.Total,
		"userRating":   0,
		"userFeedback": "",
	}

	var mine models.Rating
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		First(&mine).Error
	if err == nil {
		resp["userRating"] = mine.Stars
		resp["userFeedback"] = mine.Feedback
	} else if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_fetch_ratings", "Failed to fetch ratings.")
		return
	}

	httpresp.OK(c, resp)
}

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/capstone/internal/app/models/dto"
	"github.com/yigit/capstone/internal/app/services"
	"github.com/yigit/capstone/internal/middleware"
)

// ReviewController handles review stage updates
type ReviewController struct {
	reviewService services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// UpdateStage applies a partial update to one stage of a review
// @Summary Update a review stage
// @Description Updates score, remarks or status of a single stage; other stages are untouched
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reviewId path string true "Review ID"
// @Param stage query string true "Stage" Enums(zero, one, two, three, model, final)
// @Param request body object true "Stage fields (score, remarks, status)"
// @Success 200 {object} dto.StageUpdateResponse "Stage updated"
// @Failure 400 {object} dto.ErrorResponse "Stage missing or invalid, or bad fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Review stage not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{reviewId}/project [put]
func (c *ReviewController) UpdateStage(ctx *gin.Context) {
	var body map[string]json.RawMessage
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
			return
		}
	}

	record, message, err := c.reviewService.UpdateStage(ctx, ctx.Param("reviewId"), ctx.Query("stage"), body)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StageUpdateResponse{
		UpdateData: dto.NewStageRecordResponse(record),
		Message:    message,
	})
}

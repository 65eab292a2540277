package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewpulse/internal/models/request_models"
	"reviewpulse/internal/models/response_models"
	"reviewpulse/internal/services"
	"reviewpulse/pkg/utils"
)

type ReviewController struct {
	reviewService services.ReviewServiceInterface
}

func NewReviewController(reviewService services.ReviewServiceInterface) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// GetPrefill validates a token and returns the data the review form is
// rendered with. This is a public route; the token itself is the credential.
func (rc *ReviewController) GetPrefill(c *gin.Context) {
	token := c.Param("token")

	prefill, err := rc.reviewService.GetPrefill(c.Request.Context(), token)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prefill, "")
}

// SubmitReview consumes the token and stores the review.
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var req request_models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	feedbackID, err := rc.reviewService.Submit(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.SubmitReviewResponse{FeedbackID: feedbackID}, "Review submitted")
}

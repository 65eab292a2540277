package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewpulse/internal/models/request_models"
	"reviewpulse/internal/models/response_models"
	"reviewpulse/internal/services"
	"reviewpulse/pkg/utils"
)

type LinkController struct {
	linkService services.LinkServiceInterface
}

func NewLinkController(linkService services.LinkServiceInterface) *LinkController {
	return &LinkController{linkService: linkService}
}

// SendReviewLink issues a single-use review link and emails the invitation.
func (lc *LinkController) SendReviewLink(c *gin.Context) {
	var req request_models.SendReviewLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Brand-scoped admins can only issue links for their own brand.
	if role := c.GetString("role"); role != services.RoleSuperadmin {
		if brandID := c.GetString("brand_id"); brandID != "" && brandID != req.BrandID {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			return
		}
	}

	token, err := lc.linkService.Issue(c.Request.Context(), services.IssueLinkRequest{
		OrderID:       req.OrderID,
		ProductID:     req.ProductID,
		BrandID:       req.BrandID,
		ProductName:   req.ProductName,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SendReviewLinkResponse{Token: token}, "Review link created")
}

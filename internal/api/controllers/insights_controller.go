package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewpulse/internal/services"
	"reviewpulse/pkg/utils"
)

type InsightsController struct {
	insightsService services.InsightsServiceInterface
}

func NewInsightsController(insightsService services.InsightsServiceInterface) *InsightsController {
	return &InsightsController{insightsService: insightsService}
}

// GetProductInsights aggregates one product's reviews for the caller's brand.
// Superadmins may pass ?brandId= to inspect any brand.
func (ic *InsightsController) GetProductInsights(c *gin.Context) {
	brandID, ok := ic.resolveBrand(c)
	if !ok {
		return
	}

	insights, err := ic.insightsService.ComputeProductInsights(c.Request.Context(), c.Param("productId"), brandID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "")
}

// GetBrandInsights aggregates every product of the caller's brand.
func (ic *InsightsController) GetBrandInsights(c *gin.Context) {
	brandID, ok := ic.resolveBrand(c)
	if !ok {
		return
	}

	insights, err := ic.insightsService.ComputeBrandInsights(c.Request.Context(), brandID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "")
}

// GetGlobalInsights spans all brands; the service enforces superadmin.
func (ic *InsightsController) GetGlobalInsights(c *gin.Context) {
	insights, err := ic.insightsService.ComputeGlobalInsights(c.Request.Context(), c.GetString("role"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, insights, "")
}

// resolveBrand picks the brand scope for the request: brand admins are pinned
// to their token's brand, superadmins choose via query parameter.
func (ic *InsightsController) resolveBrand(c *gin.Context) (string, bool) {
	brandID := c.GetString("brand_id")
	if c.GetString("role") == services.RoleSuperadmin {
		if q := c.Query("brandId"); q != "" {
			brandID = q
		}
	}
	if brandID == "" {
		utils.RespondError(c, http.StatusBadRequest, "brandId is required")
		return "", false
	}
	return brandID, true
}

package handlers

import (
	"net/http"
	"time"

	response "tumblecup_admin/internal/adapter/http/dto/response"
	"tumblecup_admin/internal/usecase"
	"tumblecup_admin/pkg"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the sales analytics tab: the cost/profit rollup
// over confirmed orders in the current filter scope, and its CSV export.

type AnalyticsHandler struct {
	usecase usecase.IAnalyticsUseCase
}

func NewAnalyticsHandler(uc usecase.IAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{usecase: uc}
}

// GetAnalytics returns the analytics report for the filtered order set.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(errInvalidFilters.HTTPStatus, errInvalidFilters.ToHTTPError())
		return
	}

	report, err := h.usecase.Analytics(c.Request.Context(), filters)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAnalyticsReport(report))
}

// ExportAnalytics streams the product breakdown as a CSV attachment.
func (h *AnalyticsHandler) ExportAnalytics(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		c.JSON(errInvalidFilters.HTTPStatus, errInvalidFilters.ToHTTPError())
		return
	}

	report, err := h.usecase.Analytics(c.Request.Context(), filters)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	data, err := usecase.ProductBreakdownCSV(report.Metrics.ProductBreakdown)
	if err != nil {
		appErr := pkg.NewDomainError("EXPORT_FAILED", "Could not export analytics", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	name := usecase.ExportFilename("analytics", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

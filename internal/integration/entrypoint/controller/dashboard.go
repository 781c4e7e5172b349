package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/usecase/calendar"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/dashboard"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// DashboardController handles the dashboard and calendar endpoints.
type DashboardController struct {
	getSummaryUseCase *dashboard.GetSummaryUseCase
	calendar          *calendar.Builder
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(getSummaryUseCase *dashboard.GetSummaryUseCase, builder *calendar.Builder) *DashboardController {
	return &DashboardController{
		getSummaryUseCase: getSummaryUseCase,
		calendar:          builder,
	}
}

// GetSummary handles GET /dashboard requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToDashboardResponse(output)})
}

// GetCalendar handles GET /calendar requests. Missing year or month
// select the current one.
func (c *DashboardController) GetCalendar(ctx *gin.Context) {
	year, ok := intQuery(ctx, "year")
	if !ok {
		return
	}
	month, ok := intQuery(ctx, "month")
	if !ok {
		return
	}

	view, err := c.calendar.Month(ctx.Request.Context(), year, time.Month(month))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: view})
}

// intQuery reads an optional integer query parameter. Absent reads as zero.
func intQuery(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		invalidQuery(ctx, name)
		return 0, false
	}
	return n, true
}

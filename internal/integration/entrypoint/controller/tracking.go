package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// TrackingController handles cycle log and prediction endpoints.
type TrackingController struct {
	registry *session.Registry
}

// NewTrackingController creates a new tracking controller instance.
func NewTrackingController(registry *session.Registry) *TrackingController {
	return &TrackingController{registry: registry}
}

// ListLogs handles GET /logs requests.
func (c *TrackingController) ListLogs(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	logs, err := state.Logs.LoadLogs(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, logsResponse(logs))
}

// MonthlyLogs handles GET /logs/month requests.
func (c *TrackingController) MonthlyLogs(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	logs, err := state.Logs.LoadMonthlyLogs(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, logsResponse(logs))
}

// CreateLog handles POST /logs requests.
func (c *TrackingController) CreateLog(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.CreateLogRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := state.Logs.CreateLog(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.DataResponse{Message: "Log saved", Data: created})
}

// RefreshLogs handles POST /logs/refresh requests.
func (c *TrackingController) RefreshLogs(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	if err := state.Logs.RefreshLogs(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, logsResponse(state.Logs.LogsState()))
}

// LogPages handles GET /logs/pages requests. ?page=n jumps to page n when
// it exists; out-of-range pages leave the current page in place.
func (c *TrackingController) LogPages(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	page := 1
	if raw := ctx.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			invalidQuery(ctx, "page")
			return
		}
		page = n
	}

	history := state.Logs.History()
	reqCtx := ctx.Request.Context()
	var err error
	if page == 1 || history.State().TotalPages == 0 {
		err = history.Load(reqCtx)
	}
	if err == nil && page != 1 {
		err = history.GoToPage(reqCtx, page)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	current := history.State()
	ctx.JSON(http.StatusOK, dto.ListResponse{
		Data: current.Items,
		Pagination: dto.PaginationResponse{
			Page:       current.CurrentPage,
			TotalPages: current.TotalPages,
		},
	})
}

// LatestPrediction handles GET /predictions/latest requests.
func (c *TrackingController) LatestPrediction(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	summary := state.Prediction.Latest(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToPredictionResponse(summary)})
}

// RefreshPrediction handles POST /predictions/refresh requests.
func (c *TrackingController) RefreshPrediction(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	summary, err := state.Prediction.RefreshPrediction(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToPredictionResponse(summary)})
}

func logsResponse(state async.FetchState[[]entity.CycleLog]) dto.FetchResponse {
	logs := state.Data
	if logs == nil {
		logs = []entity.CycleLog{}
	}
	return dto.FetchResponse{
		Status: string(state.Status),
		Data:   logs,
		Error:  state.Error,
	}
}

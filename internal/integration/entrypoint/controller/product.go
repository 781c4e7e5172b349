package controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/product"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// ProductController handles the pad shop catalog.
type ProductController struct {
	registry *session.Registry
}

// NewProductController creates a new product controller instance.
func NewProductController(registry *session.Registry) *ProductController {
	return &ProductController{registry: registry}
}

// List handles GET /products requests. ?sort= orders the list and
// ?min= / ?max= narrow it to a price range in minor units.
func (c *ProductController) List(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	filter, ok := priceRange(ctx)
	if !ok {
		return
	}

	view := state.Catalog.View(ctx.Request.Context(), entity.ProductSort(ctx.Query("sort")), filter)
	ctx.JSON(http.StatusOK, catalogResponse(view))
}

// Refresh handles POST /products/refresh requests.
func (c *ProductController) Refresh(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	view, err := state.Catalog.Refresh(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, catalogResponse(view))
}

// Create handles POST /products requests.
func (c *ProductController) Create(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	created, err := state.Creator.Create(ctx.Request.Context(), req.ToInput())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.DataResponse{
		Message: "Product created",
		Data:    dto.ToProductResponses([]entity.Product{*created})[0],
	})
}

// Search handles POST /products/search requests. The query runs after the
// debounce period; the response carries the state at the time of the call.
func (c *ProductController) Search(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.SearchRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ctx.JSON(http.StatusAccepted, searchResponse(state.Search.Query(req.Query)))
}

// SearchResults handles GET /products/search requests.
func (c *ProductController) SearchResults(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, searchResponse(state.Search.State()))
}

// priceRange reads the optional min and max filters.
func priceRange(ctx *gin.Context) (*entity.PriceRange, bool) {
	rawMin, rawMax := ctx.Query("min"), ctx.Query("max")
	if rawMin == "" && rawMax == "" {
		return nil, true
	}

	filter := &entity.PriceRange{Max: math.MaxInt64}
	if rawMin != "" {
		v, err := strconv.ParseInt(rawMin, 10, 64)
		if err != nil {
			invalidQuery(ctx, "min")
			return nil, false
		}
		filter.Min = v
	}
	if rawMax != "" {
		v, err := strconv.ParseInt(rawMax, 10, 64)
		if err != nil {
			invalidQuery(ctx, "max")
			return nil, false
		}
		filter.Max = v
	}
	return filter, true
}

func catalogResponse(view product.View) dto.FetchResponse {
	return dto.FetchResponse{
		Status: string(view.Status),
		Data:   dto.ToProductResponses(view.Products),
		Error:  view.Error,
	}
}

func searchResponse(state async.SearchState[entity.Product]) dto.SearchResponse {
	return dto.SearchResponse{
		Query:   state.Query,
		Results: dto.ToProductResponses(state.Results),
		Pending: state.Loading,
		Error:   state.Error,
	}
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cart"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// CartController handles the session's shopping cart.
type CartController struct {
	registry          *session.Registry
	addProductUseCase *cart.AddProductUseCase
}

// NewCartController creates a new cart controller instance.
func NewCartController(registry *session.Registry, addProductUseCase *cart.AddProductUseCase) *CartController {
	return &CartController{
		registry:          registry,
		addProductUseCase: addProductUseCase,
	}
}

// Get handles GET /cart requests.
func (c *CartController) Get(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToCartResponse(state.Cart.Snapshot())})
}

// AddItem handles POST /cart/items requests.
func (c *CartController) AddItem(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.CartItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	snapshot, err := c.addProductUseCase.Execute(ctx.Request.Context(), state.Cart, req.ProductID, req.Quantity)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToCartResponse(snapshot)})
}

// UpdateItem handles PATCH /cart/items/:id requests. A quantity below one
// removes the line.
func (c *CartController) UpdateItem(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.CartQuantityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	snapshot := state.Cart.UpdateQuantity(ctx.Param("id"), req.Quantity)
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToCartResponse(snapshot)})
}

// RemoveItem handles DELETE /cart/items/:id requests.
func (c *CartController) RemoveItem(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}
	snapshot := state.Cart.RemoveFromCart(ctx.Param("id"))
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToCartResponse(snapshot)})
}

// Clear handles DELETE /cart requests.
func (c *CartController) Clear(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}
	snapshot := state.Cart.ClearCart()
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToCartResponse(snapshot)})
}

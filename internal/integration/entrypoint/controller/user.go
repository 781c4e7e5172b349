package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/usecase/user"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// UserController handles profile endpoints.
type UserController struct {
	getProfileUseCase *user.GetProfileUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(getProfileUseCase *user.GetProfileUseCase) *UserController {
	return &UserController{
		getProfileUseCase: getProfileUseCase,
	}
}

// Me handles GET /me requests. ?refresh=true bypasses the cache.
func (c *UserController) Me(ctx *gin.Context) {
	refresh := ctx.Query("refresh") == "true"

	profile, err := c.getProfileUseCase.Execute(ctx.Request.Context(), refresh)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToUserResponse(profile)})
}

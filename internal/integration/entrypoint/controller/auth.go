package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/usecase/auth"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase *auth.RegisterUserUseCase
	loginUseCase    *auth.LoginUserUseCase
	logoutUseCase   *auth.LogoutUserUseCase
	authState       *auth.AuthState
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	authState *auth.AuthState,
) *AuthController {
	return &AuthController{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		authState:       authState,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), entity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		User:      dto.ToUserResponse(output.User),
		ExpiresAt: output.ExpiresAt,
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), entity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		User:      dto.ToUserResponse(output.User),
		ExpiresAt: output.ExpiresAt,
	})
}

// Logout handles POST /auth/logout requests.
func (c *AuthController) Logout(ctx *gin.Context) {
	output, err := c.logoutUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// Session handles GET /auth/session requests.
func (c *AuthController) Session(ctx *gin.Context) {
	status, err := c.authState.CheckAuth(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: status.Authenticated,
		ExpiresAt:     status.ExpiresAt,
	})
}

// ValidatePassword handles POST /auth/password/validate requests.
func (c *AuthController) ValidatePassword(ctx *gin.Context) {
	var req dto.PasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result := entity.ValidatePassword(req.Password, entity.DefaultPasswordRequirements)
	ctx.JSON(http.StatusOK, dto.ToPasswordValidationResponse(result))
}

// handleAuthError reports a remote 401 from the credential endpoints as bad
// credentials rather than as an expired session.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) && domainerror.IsAuth(err) {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: domainerror.Message(err),
			Code:  string(domainerror.ErrCodeInvalidCredentials),
		})
		return
	}
	respondError(ctx, err)
}

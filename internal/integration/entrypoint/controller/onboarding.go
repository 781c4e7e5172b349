package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// OnboardingController handles the cycle setup wizard.
type OnboardingController struct {
	registry *session.Registry
}

// NewOnboardingController creates a new onboarding controller instance.
func NewOnboardingController(registry *session.Registry) *OnboardingController {
	return &OnboardingController{registry: registry}
}

// GetDraft handles GET /onboarding/draft requests.
func (c *OnboardingController) GetDraft(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	view, err := state.Drafts.Get(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToDraftResponse(view)})
}

// SaveDraft handles PUT /onboarding/draft requests. Field errors are part
// of the saved draft, not a failed request.
func (c *OnboardingController) SaveDraft(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	var req dto.DraftRequest
	if !bindJSON(ctx, &req) {
		return
	}

	view, err := state.Drafts.Save(ctx.Request.Context(), req.Step, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DataResponse{Data: dto.ToDraftResponse(view)})
}

// DiscardDraft handles DELETE /onboarding/draft requests.
func (c *OnboardingController) DiscardDraft(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	if err := state.Drafts.Discard(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Draft discarded"})
}

// Submit handles POST /onboarding/submit requests.
func (c *OnboardingController) Submit(ctx *gin.Context) {
	state, ok := sessionState(ctx, c.registry)
	if !ok {
		return
	}

	message, err := state.Drafts.Submit(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

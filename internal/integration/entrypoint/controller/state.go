package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/session"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// sessionState returns the in-memory state of the request's session, or
// writes an error response and reports false.
func sessionState(ctx *gin.Context, registry *session.Registry) (*session.State, bool) {
	id, ok := adapter.SessionIDFromContext(ctx.Request.Context())
	if !ok {
		respondError(ctx, domainerror.NewAuthError(
			domainerror.ErrCodeMissingSession,
			"No session for this request",
			domainerror.ErrSessionNotFound,
		))
		return nil, false
	}
	return registry.Get(id), true
}

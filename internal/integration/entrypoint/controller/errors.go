// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// invalidBody rejects a request whose body could not be decoded.
func invalidBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeMissingFields),
	})
}

// respondError writes err as an ErrorResponse with the status and display
// message its classification calls for.
func respondError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusForAuthCode(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrSubmitPending) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: domainerror.Message(err),
			Code:  string(domainerror.ErrCodeSubmitPending),
		})
		return
	}

	classified := domainerror.Classify(err)
	code := classified.Kind.Code()
	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) && validationErr.Code != "" {
		code = validationErr.Code
	}

	status := statusForKind(classified)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request.Context(), "request failed",
			"path", ctx.FullPath(),
			"kind", classified.Kind,
			"error", err,
		)
	}

	resp := dto.ErrorResponse{
		Error: classified.Display(),
		Code:  string(code),
	}
	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		resp.Details = domainerror.ParseValidationErrors(err)
	}
	ctx.JSON(status, resp)
}

// statusForKind maps a classified error to the status the browser sees.
func statusForKind(e *domainerror.ClientError) int {
	switch e.Kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindAuth, domainerror.KindNotFound, domainerror.KindUnprocessable:
		return e.Status
	case domainerror.KindNetwork:
		return http.StatusBadGateway
	case domainerror.KindServer:
		if e.Status > http.StatusInternalServerError {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	default:
		if e.Status >= http.StatusBadRequest {
			return e.Status
		}
		return http.StatusInternalServerError
	}
}

// statusForAuthCode maps auth error codes to HTTP status codes.
func statusForAuthCode(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeNotAuthenticated,
		domainerror.ErrCodeSessionExpired,
		domainerror.ErrCodeMissingSession:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// invalidQuery rejects a request with a malformed query parameter.
func invalidQuery(ctx *gin.Context, param string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid query parameter: " + param,
		Code:  string(domainerror.ErrCodeInvalidValue),
	})
}

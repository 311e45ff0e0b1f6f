package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/modules/quiz"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/ctxutil"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

// respondServiceError maps service errors to the JSON envelope. Anything unrecognized is a
// 500 with a fixed code; the underlying error is only logged.
func respondServiceError(c *gin.Context, log *logger.Logger, code string, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		response.RespondError(c, status, ae.Code, ae)
		return
	}
	switch {
	case errors.Is(err, quiz.ErrCorpusNotReady):
		response.RespondError(c, http.StatusServiceUnavailable, "corpus_not_ready", err)
	case errors.Is(err, quiz.ErrWordNotFound):
		response.RespondError(c, http.StatusNotFound, "word_not_found", err)
	case errors.Is(err, services.ErrEntryNotFound):
		response.RespondError(c, http.StatusNotFound, "entry_not_found", err)
	case errors.Is(err, services.ErrProgressConflict):
		response.RespondError(c, http.StatusConflict, "progress_conflict", err)
	case errors.Is(err, services.ErrSpeechDisabled):
		response.RespondError(c, http.StatusServiceUnavailable, "speech_disabled", err)
	case errors.Is(err, services.ErrInvalidTimezone):
		response.RespondError(c, http.StatusBadRequest, "invalid_timezone", err)
	default:
		_ = c.Error(err)
		fields := append([]any{"code", code, "error", err}, ctxutil.LogFields(c.Request.Context())...)
		log.Error("request failed", fields...)
		response.RespondError(c, http.StatusInternalServerError, code, errors.New("internal error"))
	}
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}
	return true
}

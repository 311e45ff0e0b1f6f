package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

type ProgressHandler struct {
	log      *logger.Logger
	progress services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{log: log.With("handler", "ProgressHandler"), progress: progress}
}

// GET /api/progress
func (h *ProgressHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.progress.GetProgress(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, "load_progress_failed", err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/progress/weekly-activity
func (h *ProgressHandler) Weekly(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	week, err := h.progress.WeeklyActivity(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, "load_weekly_activity_failed", err)
		return
	}
	response.RespondOK(c, week)
}

type activityRequest struct {
	Kind string `json:"kind"`
}

// POST /api/progress/activity
//
// Only logins are client-reported. Journal entries, the daily word and quizzes are credited by
// the endpoints that perform them.
func (h *ProgressHandler) RecordActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req activityRequest
	if !bindJSON(c, &req) {
		return
	}
	kind := progression.ActivityKind(req.Kind)
	switch {
	case kind == progression.ActivityLogin:
	case kind == progression.ActivityQuizCompleted:
		response.RespondError(c, http.StatusBadRequest, "use_quiz_submit", errors.New("quiz completions are recorded by quiz submission"))
		return
	case kind.Valid():
		response.RespondError(c, http.StatusBadRequest, "activity_not_reportable", errors.New("this activity is recorded by the endpoint that performs it"))
		return
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_activity_kind", errors.New("unknown activity kind"))
		return
	}
	res, err := h.progress.RecordActivity(c.Request.Context(), userID, progression.Activity{Kind: kind})
	if err != nil {
		respondServiceError(c, h.log, "record_activity_failed", err)
		return
	}
	response.RespondOK(c, res)
}

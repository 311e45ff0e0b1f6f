package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

type ProfileHandler struct {
	log      *logger.Logger
	profiles services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler"), profiles: profiles}
}

// GET /api/profile/settings
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, "load_settings_failed", err)
		return
	}
	response.RespondOK(c, p)
}

// PUT /api/profile/settings
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.UpdateProfileInput
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, h.log, "update_settings_failed", err)
		return
	}
	response.RespondOK(c, p)
}

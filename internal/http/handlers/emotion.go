package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

type EmotionHandler struct {
	log      *logger.Logger
	analysis services.AnalysisService
	quiz     services.QuizService
}

func NewEmotionHandler(log *logger.Logger, analysis services.AnalysisService, quiz services.QuizService) *EmotionHandler {
	return &EmotionHandler{
		log:      log.With("handler", "EmotionHandler"),
		analysis: analysis,
		quiz:     quiz,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// POST /api/emotions/analyze
func (h *EmotionHandler) Analyze(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req analyzeRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.analysis.AnalyzeText(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondServiceError(c, h.log, "analyze_failed", err)
		return
	}
	response.RespondOK(c, a)
}

// GET /api/emotions/wheel
func (h *EmotionHandler) Wheel(c *gin.Context) {
	response.RespondOK(c, gin.H{"categories": h.analysis.Wheel()})
}

// GET /api/emotions/word-of-the-day
func (h *EmotionHandler) WordOfTheDay(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	w, err := h.quiz.WordOfTheDay(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, "word_of_the_day_failed", err)
		return
	}
	response.RespondOK(c, w)
}

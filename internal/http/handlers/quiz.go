package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

type QuizHandler struct {
	log  *logger.Logger
	quiz services.QuizService
}

func NewQuizHandler(log *logger.Logger, quiz services.QuizService) *QuizHandler {
	return &QuizHandler{log: log.With("handler", "QuizHandler"), quiz: quiz}
}

// GET /api/quiz/questions?limit=&difficulty=&category=
func (h *QuizHandler) Questions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	qs, err := h.quiz.Questions(c.Request.Context(), userID, services.QuizFilter{
		Limit:      limit,
		Difficulty: c.Query("difficulty"),
		Category:   c.Query("category"),
	})
	if err != nil {
		respondServiceError(c, h.log, "load_questions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"questions": qs, "total": len(qs)})
}

// POST /api/quiz/validate
func (h *QuizHandler) Validate(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	var req services.QuizAnswerInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.quiz.Validate(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, "validate_answer_failed", err)
		return
	}
	response.RespondOK(c, res)
}

type submitRequest struct {
	Answers []services.QuizAnswerInput `json:"answers"`
}

// POST /api/quiz/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req submitRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.quiz.Submit(c.Request.Context(), userID, req.Answers)
	if err != nil {
		respondServiceError(c, h.log, "submit_quiz_failed", err)
		return
	}
	response.RespondOK(c, res)
}

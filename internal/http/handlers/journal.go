package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/http/response"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/services"
)

// maxUploadBytes leaves headroom over the audio cap for multipart framing.
const maxUploadBytes = 26 << 20

type JournalHandler struct {
	log     *logger.Logger
	journal services.JournalService
	voice   services.VoiceService
}

func NewJournalHandler(log *logger.Logger, journal services.JournalService, voice services.VoiceService) *JournalHandler {
	return &JournalHandler{
		log:     log.With("handler", "JournalHandler"),
		journal: journal,
		voice:   voice,
	}
}

// POST /api/journal/entries
func (h *JournalHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.CreateEntryInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.journal.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, h.log, "create_entry_failed", err)
		return
	}
	response.RespondCreated(c, res)
}

// GET /api/journal/entries?skip=&limit=
func (h *JournalHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_skip", err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	page, err := h.journal.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		respondServiceError(c, h.log, "list_entries_failed", err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/journal/entries/:id
func (h *JournalHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := entryParam(c)
	if !ok {
		return
	}
	e, err := h.journal.Get(c.Request.Context(), userID, entryID)
	if err != nil {
		respondServiceError(c, h.log, "load_entry_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"entry": e})
}

// PATCH /api/journal/entries/:id
func (h *JournalHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := entryParam(c)
	if !ok {
		return
	}
	var req services.UpdateEntryInput
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.journal.Update(c.Request.Context(), userID, entryID, req)
	if err != nil {
		respondServiceError(c, h.log, "update_entry_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"entry": e})
}

// POST /api/journal/voice (multipart: audio, title, language, is_private)
func (h *JournalHandler) CreateVoice(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("audio")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_audio", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audio", err)
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audio", err)
		return
	}
	private, _ := strconv.ParseBool(c.PostForm("is_private"))
	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(audio)
	}

	res, err := h.voice.CreateFromAudio(c.Request.Context(), userID, services.VoiceEntryInput{
		Title:     c.PostForm("title"),
		Audio:     audio,
		MimeType:  mime,
		Language:  c.PostForm("language"),
		IsPrivate: private,
	})
	if err != nil {
		respondServiceError(c, h.log, "voice_entry_failed", err)
		return
	}
	response.RespondCreated(c, res)
}

func entryParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entry_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

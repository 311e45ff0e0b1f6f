package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

const DefaultMaxEntryChars = 10000

type AnalysisService interface {
	AnalyzeText(ctx context.Context, userID uuid.UUID, text string) (emotion.Analysis, error)
	Wheel() map[string][]string
}

type analysisService struct {
	log      *logger.Logger
	analyzer *emotion.Analyzer
	profiles ProfileService
	maxChars int
}

func NewAnalysisService(log *logger.Logger, analyzer *emotion.Analyzer, profiles ProfileService, maxChars int) AnalysisService {
	if maxChars <= 0 {
		maxChars = DefaultMaxEntryChars
	}
	return &analysisService{
		log:      log.With("service", "AnalysisService"),
		analyzer: analyzer,
		profiles: profiles,
		maxChars: maxChars,
	}
}

// ValidateText rejects blank or oversized input before anything is analyzed or stored.
func ValidateText(text string, maxChars int) error {
	if strings.TrimSpace(text) == "" {
		return apierr.BadRequest("empty_text", "text is required")
	}
	if maxChars > 0 && utf8.RuneCountInString(text) > maxChars {
		return apierr.BadRequest("text_too_long", fmt.Sprintf("text exceeds %d characters", maxChars))
	}
	return nil
}

func (s *analysisService) AnalyzeText(ctx context.Context, userID uuid.UUID, text string) (emotion.Analysis, error) {
	if err := ValidateText(text, s.maxChars); err != nil {
		return emotion.Analysis{}, err
	}
	var uc *emotion.UserContext
	if userID != uuid.Nil {
		profile, err := s.profiles.Get(ctx, userID)
		if err != nil {
			s.log.Warn("profile unavailable, analyzing without context", "user_id", userID.String(), "error", err)
		} else {
			uc = profile.UserContext()
		}
	}
	return s.analyzer.Analyze(ctx, text, uc), nil
}

func (s *analysisService) Wheel() map[string][]string {
	return s.analyzer.Wheel().Categories()
}

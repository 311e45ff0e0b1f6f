package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

// Profile is the per-user context used for day boundaries and analysis personalization.
type Profile struct {
	UserID          uuid.UUID      `json:"user_id"`
	Timezone        string         `json:"timezone"`
	Location        *time.Location `json:"-"`
	Country         string         `json:"country"`
	UsageGoal       string         `json:"usage_goal"`
	ExperienceLevel string         `json:"experience_level"`
}

func (p Profile) UserContext() *emotion.UserContext {
	return &emotion.UserContext{
		Country:         p.Country,
		UsageGoal:       p.UsageGoal,
		ExperienceLevel: p.ExperienceLevel,
	}
}

// Today is the user's reference date at now.
func (p Profile) Today(now time.Time) string {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

type UpdateProfileInput struct {
	Timezone        *string `json:"timezone"`
	Country         *string `json:"country"`
	UsageGoal       *string `json:"usage_goal"`
	ExperienceLevel *string `json:"experience_level"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	settings    repos.UserSettingsRepo
	defaultZone *time.Location
	cache       *expirable.LRU[uuid.UUID, Profile]
}

type ProfileConfig struct {
	DefaultTimezone string
	CacheSize       int
	CacheTTL        time.Duration
}

func NewProfileService(db *gorm.DB, log *logger.Logger, settings repos.UserSettingsRepo, cfg ProfileConfig) (ProfileService, error) {
	serviceLog := log.With("service", "ProfileService")
	zone := time.UTC
	if name := strings.TrimSpace(cfg.DefaultTimezone); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", name, err)
		}
		zone = loc
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 4096
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &profileService{
		db:          db,
		log:         serviceLog,
		settings:    settings,
		defaultZone: zone,
		cache:       expirable.NewLRU[uuid.UUID, Profile](cfg.CacheSize, nil, cfg.CacheTTL),
	}, nil
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (Profile, error) {
	if p, ok := s.cache.Get(userID); ok {
		return p, nil
	}
	row, err := s.settings.Get(ctx, nil, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("load settings: %w", err)
	}
	p := s.build(userID, row)
	s.cache.Add(userID, p)
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Profile, error) {
	row, err := s.settings.Get(ctx, nil, userID)
	if err != nil {
		return Profile{}, fmt.Errorf("load settings: %w", err)
	}
	if row == nil {
		row = &types.UserSettings{UserID: userID}
	}
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if tz != "" {
			if _, err := time.LoadLocation(tz); err != nil {
				return Profile{}, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
			}
		}
		row.Timezone = tz
	}
	if in.Country != nil {
		row.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	if in.UsageGoal != nil {
		row.UsageGoal = strings.TrimSpace(*in.UsageGoal)
	}
	if in.ExperienceLevel != nil {
		row.ExperienceLevel = strings.TrimSpace(*in.ExperienceLevel)
	}
	if err := s.settings.Upsert(ctx, nil, row); err != nil {
		return Profile{}, fmt.Errorf("save settings: %w", err)
	}
	p := s.build(userID, row)
	s.cache.Add(userID, p)
	return p, nil
}

// build resolves the zone; an unloadable stored zone falls back to the default.
func (s *profileService) build(userID uuid.UUID, row *types.UserSettings) Profile {
	p := Profile{UserID: userID, Location: s.defaultZone, Timezone: s.defaultZone.String()}
	if row == nil {
		return p
	}
	p.Country = row.Country
	p.UsageGoal = row.UsageGoal
	p.ExperienceLevel = row.ExperienceLevel
	if tz := strings.TrimSpace(row.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			p.Location = loc
			p.Timezone = tz
		} else {
			s.log.Warn("stored timezone invalid, using default", "user_id", userID.String(), "timezone", tz)
		}
	}
	return p
}

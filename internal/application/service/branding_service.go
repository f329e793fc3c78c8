package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/temple-api/internal/config"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/document"
	"go.uber.org/zap"
)

// BrandingService resolves the letterhead printed on documents. It keeps
// the last successfully fetched branding for the whole process.
type BrandingService struct {
	settingsRepo repository.SettingsRepository
	snapshotRepo repository.BrandingSnapshotRepository
	fallback     entity.TempleBranding
	logger       *zap.Logger
	now          func() time.Time

	mu        sync.RWMutex
	lastGood  *entity.TempleBranding
	fetchedAt time.Time
}

// NewBrandingService creates a new branding service
func NewBrandingService(
	settingsRepo repository.SettingsRepository,
	snapshotRepo repository.BrandingSnapshotRepository,
	cfg config.BrandingConfig,
	logger *zap.Logger,
) *BrandingService {
	return &BrandingService{
		settingsRepo: settingsRepo,
		snapshotRepo: snapshotRepo,
		fallback:     DefaultBranding(cfg),
		logger:       logger,
		now:          time.Now,
	}
}

// DefaultBranding builds the configured branding
func DefaultBranding(cfg config.BrandingConfig) entity.TempleBranding {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Temple"
	}
	return entity.TempleBranding{
		Name: name,
		Address: entity.Address{
			Street:     cfg.Address,
			City:       cfg.City,
			State:      cfg.State,
			PostalCode: cfg.PostalCode,
			Country:    cfg.Country,
		},
		Phone:   cfg.Phone,
		Email:   cfg.Email,
		LogoURL: cfg.LogoURL,
	}
}

// EffectiveBranding is a branding value and where it came from
type EffectiveBranding struct {
	Branding  entity.TempleBranding `json:"branding"`
	Source    entity.BrandingSource `json:"source"`
	FetchedAt *time.Time            `json:"fetched_at,omitempty"`
}

// Current fetches branding from the backend. On success the value
// replaces the last-known-good copy. On failure the last-known-good copy
// is returned: in memory, then the persisted snapshot, then the
// configured default. Current never fails.
func (s *BrandingService) Current(ctx context.Context) EffectiveBranding {
	values, err := s.settingsRepo.SystemValues(ctx)
	if err == nil {
		b := entity.BrandingFromSettings(values)
		if b.Name == "" {
			b.Name = s.fallback.Name
		}
		s.remember(ctx, b)
		at := s.now()
		return EffectiveBranding{Branding: b, Source: entity.BrandingSourceLive, FetchedAt: &at}
	}

	s.logger.Warn("branding fetch failed, using last known value", zap.Error(err))
	return s.LastKnown(ctx)
}

// LastKnown returns the last-known-good branding without fetching
func (s *BrandingService) LastKnown(ctx context.Context) EffectiveBranding {
	s.mu.RLock()
	if s.lastGood != nil {
		b, at := *s.lastGood, s.fetchedAt
		s.mu.RUnlock()
		return EffectiveBranding{Branding: b, Source: entity.BrandingSourceCache, FetchedAt: &at}
	}
	s.mu.RUnlock()

	if s.snapshotRepo != nil {
		snapshot, err := s.snapshotRepo.Get(ctx)
		if err != nil {
			s.logger.Warn("branding snapshot read failed", zap.Error(err))
		}
		if snapshot != nil {
			b := snapshot.Branding()
			at := snapshot.FetchedAt
			s.mu.Lock()
			if s.lastGood == nil {
				s.lastGood, s.fetchedAt = &b, at
			}
			s.mu.Unlock()
			return EffectiveBranding{Branding: b, Source: entity.BrandingSourceSnapshot, FetchedAt: &at}
		}
	}

	return EffectiveBranding{Branding: s.fallback, Source: entity.BrandingSourceDefault}
}

func (s *BrandingService) remember(ctx context.Context, b entity.TempleBranding) {
	at := s.now()
	s.mu.Lock()
	s.lastGood, s.fetchedAt = &b, at
	s.mu.Unlock()

	if s.snapshotRepo == nil {
		return
	}
	if err := s.snapshotRepo.Save(ctx, entity.NewBrandingSnapshot(b, at)); err != nil {
		s.logger.Warn("branding snapshot write failed", zap.Error(err))
	}
}

// Letterhead converts branding to the document header
func Letterhead(b entity.TempleBranding) document.Branding {
	return document.Branding{
		Name:    b.Name,
		Address: b.Address.Lines(),
		Phone:   b.Phone,
		Email:   b.Email,
		LogoURL: b.LogoURL,
	}
}

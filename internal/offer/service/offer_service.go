package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/metrics"
)

const ActiveOffersCacheKey = "offers:active"

type OfferService struct {
	repo   OfferRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewOfferService(repo OfferRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *OfferService {
	return &OfferService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every offer, newest first.
func (s *OfferService) List(ctx context.Context) ([]domain.Offer, error) {
	return s.repo.FindAll(ctx)
}

func (s *OfferService) ListActive(ctx context.Context) ([]domain.Offer, error) {
	var cached []domain.Offer
	hit, err := cache.GetJSON(ctx, s.cache, ActiveOffersCacheKey, &cached)
	if err != nil {
		s.logger.Warn("active offers cache read failed", zap.Error(err))
	}
	metrics.RecordCacheLookup(ActiveOffersCacheKey, hit)
	if hit {
		return cached, nil
	}

	offers, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, s.cache, ActiveOffersCacheKey, offers, s.ttl); err != nil {
		s.logger.Warn("active offers cache write failed", zap.Error(err))
	}
	return offers, nil
}

func (s *OfferService) Create(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error) {
	pkg, err := validateDraft(draft)
	if err != nil {
		return nil, err
	}

	offer := &domain.Offer{
		Title:              strings.TrimSpace(draft.Title),
		DiscountPercentage: draft.DiscountPercentage,
		ApplicablePackage:  pkg,
		IsActive:           true,
		CreatedDate:        s.now().UTC(),
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		return nil, err
	}

	metrics.RecordOfferWrite("create")
	s.logger.Info("offer created",
		zap.String("offerId", offer.ID),
		zap.String("package", string(offer.ApplicablePackage)),
		zap.Int("discountPercentage", offer.DiscountPercentage),
	)
	s.invalidate(ctx)

	return offer, nil
}

func (s *OfferService) SetActive(ctx context.Context, id string, active bool) (*domain.Offer, error) {
	offer, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	metrics.RecordOfferWrite("toggle")
	s.logger.Info("offer toggled", zap.String("offerId", id), zap.Bool("isActive", active))
	s.invalidate(ctx)

	return offer, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.RecordOfferWrite("delete")
	s.logger.Info("offer deleted", zap.String("offerId", id))
	s.invalidate(ctx)

	return nil
}

func (s *OfferService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, ActiveOffersCacheKey); err != nil {
		s.logger.Warn("failed to invalidate active offers cache", zap.Error(err))
	}
}

func validateDraft(draft domain.OfferDraft) (domain.PackageType, error) {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(draft.Title) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "title",
			Message: "title is required",
		})
	}

	if draft.DiscountPercentage < domain.MinDiscountPercentage || draft.DiscountPercentage > domain.MaxDiscountPercentage {
		details = append(details, apperrors.ValidationDetail{
			Field:   "discountPercentage",
			Message: "discountPercentage must be between 1 and 99",
		})
	}

	pkg, ok := domain.ParsePackageType(draft.ApplicablePackage)
	if !ok {
		details = append(details, apperrors.ValidationDetail{
			Field:   "applicablePackage",
			Message: "applicablePackage must be one of basic, standard, pro",
		})
	}

	if len(details) > 0 {
		return "", apperrors.NewValidationError("Offer validation failed.", details...)
	}
	return pkg, nil
}

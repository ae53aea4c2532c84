package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/metrics"
)

// ProjectsCacheKey holds the cached public project board.
const ProjectsCacheKey = "orders:projects"

type LifecycleService struct {
	repo   OrderRepository
	cache  cache.Cache
	policy domain.TransitionPolicy
	logger *zap.Logger
	now    func() time.Time
}

func NewLifecycleService(
	repo OrderRepository,
	c cache.Cache,
	policy domain.TransitionPolicy,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		repo:   repo,
		cache:  c,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Submit records a new order. The status is always Pending regardless of
// what the caller sent.
func (s *LifecycleService) Submit(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error) {
	pkg, err := validateSubmission(sub)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Name:        strings.TrimSpace(sub.Name),
		Email:       strings.TrimSpace(sub.Email),
		Phone:       strings.TrimSpace(sub.Phone),
		WebsiteType: strings.TrimSpace(sub.WebsiteType),
		Package:     pkg,
		Referral:    strings.TrimSpace(sub.Referral),
		Preferences: sub.Preferences,
		Status:      domain.StatusPending,
		OrderDate:   s.now().UTC(),
		Version:     1,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.RecordOrderSubmitted()
	s.logger.Info("order submitted",
		zap.String("orderId", order.ID),
		zap.String("package", string(order.Package)),
		zap.String("websiteType", order.WebsiteType),
	)

	return order, nil
}

// Transition moves an order to rawStatus. With a nil expectedVersion and the
// permissive policy the write is unconditional and the last writer wins.
func (s *LifecycleService) Transition(ctx context.Context, id string, rawStatus string, expectedVersion *int64) (*domain.Order, error) {
	target, ok := domain.ParseStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid status value.", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of Pending, Accepted, Rejected, Completed",
		})
	}

	logger := s.logger.With(zap.String("orderId", id), zap.String("status", string(target)))

	if s.policy.Enforced() {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if expectedVersion != nil && *expectedVersion != current.Version {
			metrics.RecordOrderTransition(string(target), "conflict")
			return nil, staleVersion(id)
		}
		if !s.policy.Allows(current.Status, target) {
			metrics.RecordOrderTransition(string(target), "rejected")
			logger.Info("transition refused by policy", zap.String("from", string(current.Status)))
			return nil, apperrors.NewConflictError(fmt.Sprintf(
				"order cannot move from %s to %s", current.Status, target,
			))
		}
		version := current.Version
		expectedVersion = &version
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target, expectedVersion)
	if err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			metrics.RecordOrderTransition(string(target), "conflict")
		}
		return nil, err
	}

	metrics.RecordOrderTransition(string(target), "applied")
	logger.Info("order status updated", zap.Int64("version", updated.Version))

	if err := s.cache.Delete(ctx, ProjectsCacheKey); err != nil {
		logger.Warn("failed to invalidate project board cache", zap.Error(err))
	}

	return updated, nil
}

func validateSubmission(sub domain.OrderSubmission) (domain.PackageType, error) {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value string
	}{
		{"name", sub.Name},
		{"email", sub.Email},
		{"phone", sub.Phone},
		{"websiteType", sub.WebsiteType},
		{"package", sub.Package},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   r.field,
				Message: r.field + " is required",
			})
		}
	}

	pkg, ok := domain.ParsePackageType(strings.TrimSpace(sub.Package))
	if !ok && strings.TrimSpace(sub.Package) != "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "package",
			Message: "package must be one of basic, standard, pro",
		})
	}

	if len(details) > 0 {
		return "", apperrors.NewValidationError("Order validation failed.", details...)
	}
	return pkg, nil
}

func staleVersion(id string) error {
	return apperrors.NewConflictError(fmt.Sprintf("order %s was modified by another request", id))
}

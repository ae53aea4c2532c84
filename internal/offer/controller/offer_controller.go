package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studentsites/internal/domain"
	"studentsites/internal/dto"
	apperrors "studentsites/internal/errors"
	"studentsites/internal/server/middleware"
	"studentsites/internal/server/response"
)

const deletedMessage = "Offer deleted successfully."

type OfferService interface {
	List(ctx context.Context) ([]domain.Offer, error)
	ListActive(ctx context.Context) ([]domain.Offer, error)
	Create(ctx context.Context, draft domain.OfferDraft) (*domain.Offer, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
}

type PricingService interface {
	PricedPackages(ctx context.Context) ([]domain.PricedPackage, error)
}

type OfferController struct {
	offers  OfferService
	pricing PricingService
	logger  *zap.Logger
}

func NewOfferController(offers OfferService, pricing PricingService, logger *zap.Logger) *OfferController {
	return &OfferController{
		offers:  offers,
		pricing: pricing,
		logger:  logger,
	}
}

func (c *OfferController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	offers, err := c.offers.List(r.Context())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOfferResponses(offers), logger)
}

func (c *OfferController) ListActive(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	offers, err := c.offers.ListActive(r.Context())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOfferResponses(offers), logger)
}

func (c *OfferController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	var req dto.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.Validation(w, "invalid JSON body", logger, invalidBody())
		return
	}

	offer, err := c.offers.Create(r.Context(), req.ToDomain())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusCreated, dto.NewOfferResponse(*offer), logger)
}

func (c *OfferController) SetActive(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id := chi.URLParam(r, "id")

	var req dto.SetOfferActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.Validation(w, "invalid JSON body", logger, invalidBody())
		return
	}
	if req.IsActive == nil {
		response.Validation(w, "Offer validation failed.", logger, apperrors.ValidationDetail{
			Field:   "isActive",
			Message: "isActive is required",
		})
		return
	}

	offer, err := c.offers.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		response.Error(w, err, logger.With(zap.String("offerId", id)))
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOfferResponse(*offer), logger)
}

func (c *OfferController) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id := chi.URLParam(r, "id")

	if err := c.offers.Delete(r.Context(), id); err != nil {
		response.Error(w, err, logger.With(zap.String("offerId", id)))
		return
	}

	response.Message(w, http.StatusOK, deletedMessage, logger)
}

// Packages serves the catalog with active offers applied.
func (c *OfferController) Packages(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	priced, err := c.pricing.PricedPackages(r.Context())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewPackageResponses(priced), logger)
}

func (c *OfferController) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("requestId", middleware.RequestIDFromContext(r.Context())))
}

func invalidBody() apperrors.ValidationDetail {
	return apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	}
}

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

const submittedMessage = "Order received successfully!"

type LifecycleService interface {
	Submit(ctx context.Context, sub domain.OrderSubmission) (*domain.Order, error)
	Transition(ctx context.Context, id string, status string, expectedVersion *int64) (*domain.Order, error)
}

type QueryService interface {
	ListAll(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Order, error)
	ListPublicProjects(ctx context.Context) ([]domain.ProjectSummary, error)
}

type OrderController struct {
	lifecycle LifecycleService
	queries   QueryService
	logger    *zap.Logger
}

func NewOrderController(lifecycle LifecycleService, queries QueryService, logger *zap.Logger) *OrderController {
	return &OrderController{
		lifecycle: lifecycle,
		queries:   queries,
		logger:    logger,
	}
}

func (c *OrderController) Submit(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.Validation(w, "invalid JSON body", logger, invalidBody())
		return
	}

	if _, err := c.lifecycle.Submit(r.Context(), req.ToDomain()); err != nil {
		response.Error(w, err, logger)
		return
	}

	response.Message(w, http.StatusCreated, submittedMessage, logger)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.Validation(w, "invalid JSON body", logger, invalidBody())
		return
	}

	order, err := c.lifecycle.Transition(r.Context(), id, req.Status, req.Version)
	if err != nil {
		response.Error(w, err, logger.With(zap.String("orderId", id)))
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOrderResponse(*order), logger)
}

func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	q := r.URL.Query()

	filter := dto.OrderFilterQuery{
		WebsiteType: q.Get("websiteType"),
		Package:     q.Get("package"),
		Referral:    q.Get("referral"),
	}

	orders, err := c.queries.ListAll(r.Context(), filter.ToDomain())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewOrderResponses(orders), logger)
}

func (c *OrderController) ListProjects(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)

	projects, err := c.queries.ListPublicProjects(r.Context())
	if err != nil {
		response.Error(w, err, logger)
		return
	}

	response.JSON(w, http.StatusOK, dto.NewProjectResponses(projects), logger)
}

func (c *OrderController) requestLogger(r *http.Request) *zap.Logger {
	return c.logger.With(zap.String("requestId", middleware.RequestIDFromContext(r.Context())))
}

func invalidBody() apperrors.ValidationDetail {
	return apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	}
}

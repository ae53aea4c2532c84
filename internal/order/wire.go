package order

import (
	"go.uber.org/zap"

	"studentsites/internal/config"
	"studentsites/internal/domain"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/infrastructure/storage"
	"studentsites/internal/order/controller"
	"studentsites/internal/order/repository"
	"studentsites/internal/order/service"
)

func NewModule(backend *storage.Backend, c cache.Cache, cfg *config.Config, logger *zap.Logger) (*controller.OrderController, error) {
	policy, err := domain.ParseTransitionPolicy(cfg.Order.TransitionPolicy)
	if err != nil {
		return nil, err
	}

	var repo service.OrderRepository
	if backend.SQL != nil {
		repo = repository.NewMySQLOrderRepository(backend.SQL, backend.QueryTimeout)
	} else {
		repo = repository.NewMongoOrderRepository(backend.Mongo, backend.QueryTimeout)
	}

	moduleLogger := logger.Named("order")
	lifecycle := service.NewLifecycleService(repo, c, policy, moduleLogger)
	queries := service.NewQueryService(repo, c, cfg.Cache.TTL, moduleLogger)

	moduleLogger.Info("order module ready", zap.String("transitionPolicy", policy.Name()))

	return controller.NewOrderController(lifecycle, queries, moduleLogger), nil
}

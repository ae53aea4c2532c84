package offer

import (
	"go.uber.org/zap"

	"studentsites/internal/config"
	"studentsites/internal/infrastructure/cache"
	"studentsites/internal/infrastructure/storage"
	"studentsites/internal/offer/controller"
	"studentsites/internal/offer/repository"
	"studentsites/internal/offer/service"
)

func NewModule(backend *storage.Backend, c cache.Cache, catalog service.PackageCatalog, cfg *config.Config, logger *zap.Logger) *controller.OfferController {
	var repo service.OfferRepository
	if backend.SQL != nil {
		repo = repository.NewMySQLOfferRepository(backend.SQL, backend.QueryTimeout)
	} else {
		repo = repository.NewMongoOfferRepository(backend.Mongo, backend.QueryTimeout)
	}

	moduleLogger := logger.Named("offer")
	offers := service.NewOfferService(repo, c, cfg.Cache.TTL, moduleLogger)
	pricing := service.NewPricingService(offers, catalog)

	return controller.NewOfferController(offers, pricing, moduleLogger)
}

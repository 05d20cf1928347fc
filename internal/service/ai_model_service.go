package service

import (
	"context"
	"time"

	"tg-miniapp-be/internal/catalog"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/logger"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	modelCacheTTL         = 60 * time.Second
	enabledModelsCacheKey = "models:enabled"
)

type IAIModelService interface {
	ListEnabled(ctx context.Context) ([]*entity.AIModel, error)
	ListAll(ctx context.Context) ([]*entity.AIModel, error)
	GetByCode(ctx context.Context, code string) (*entity.AIModel, error)
	UpdatePrice(ctx context.Context, code string, priceTokens int) error
	SetEnabled(ctx context.Context, code string, enabled bool) error
	SeedDefaults(ctx context.Context) error
}

type aiModelService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewAIModelService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAIModelService {
	return &aiModelService{
		uowFactory: uowFactory,
		cache:      gocache.New(modelCacheTTL, 2*modelCacheTTL),
		logger:     log,
	}
}

func (s *aiModelService) ListEnabled(ctx context.Context) ([]*entity.AIModel, error) {
	if cached, ok := s.cache.Get(enabledModelsCacheKey); ok {
		return cached.([]*entity.AIModel), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	models, err := uow.AIModelRepository().FindAll(ctx,
		specification.EnabledOnly{},
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	s.cache.Set(enabledModelsCacheKey, models, gocache.DefaultExpiration)
	return models, nil
}

func (s *aiModelService) ListAll(ctx context.Context) ([]*entity.AIModel, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AIModelRepository().FindAll(ctx,
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
}

func (s *aiModelService) GetByCode(ctx context.Context, code string) (*entity.AIModel, error) {
	cacheKey := "models:code:" + code
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*entity.AIModel), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	model, err := uow.AIModelRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, entity.ErrUnknownModel
	}

	s.cache.Set(cacheKey, model, gocache.DefaultExpiration)
	return model, nil
}

func (s *aiModelService) UpdatePrice(ctx context.Context, code string, priceTokens int) error {
	if priceTokens < 0 {
		return entity.ErrInvalidInput
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AIModelRepository().UpdatePrice(ctx, code, priceTokens); err != nil {
		return err
	}
	s.invalidate(code)
	return nil
}

func (s *aiModelService) SetEnabled(ctx context.Context, code string, enabled bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AIModelRepository().SetEnabled(ctx, code, enabled); err != nil {
		return err
	}
	s.invalidate(code)
	return nil
}

func (s *aiModelService) invalidate(code string) {
	s.cache.Delete(enabledModelsCacheKey)
	s.cache.Delete("models:code:" + code)
}

// SeedDefaults reconciles the ai_models table with the shipped catalog.
// Idempotent: new codes are inserted, technical fields of existing rows are
// refreshed, price_tokens of existing rows is left to the admin, and rows
// whose code left the catalog get disabled.
func (s *aiModelService) SeedDefaults(ctx context.Context) error {
	defaults := catalog.DefaultModels()
	knownCodes := make(map[string]bool, len(defaults))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.AIModelRepository()

	for i, def := range defaults {
		knownCodes[def.Code] = true

		existing, err := repo.FindOne(ctx, specification.ByCode{Code: def.Code})
		if err != nil {
			return err
		}

		if existing == nil {
			created := *def
			created.Id = uuid.New()
			created.SortOrder = i
			created.CreatedAt = time.Now()
			created.UpdatedAt = time.Now()
			if err := repo.Create(ctx, &created); err != nil {
				return err
			}
			s.logger.Info("Catalog", "Seeded model", map[string]interface{}{"code": def.Code, "provider": def.Provider})
			continue
		}

		updated := *existing
		updated.Name = def.Name
		updated.Description = def.Description
		updated.Provider = def.Provider
		updated.ProviderModel = def.ProviderModel
		updated.Type = def.Type
		updated.Mode = def.Mode
		updated.PricePerSecond = def.PricePerSecond
		updated.PriceDisplayMode = def.PriceDisplayMode
		updated.RequiresImage = def.RequiresImage
		updated.RequiresVideo = def.RequiresVideo
		updated.AspectRatios = def.AspectRatios
		updated.Durations = def.Durations
		updated.Icon = def.Icon
		updated.SortOrder = i
		updated.UpdatedAt = time.Now()

		if err := repo.Update(ctx, &updated); err != nil {
			return err
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range all {
		if !knownCodes[m.Code] && m.IsEnabled {
			if err := repo.SetEnabled(ctx, m.Code, false); err != nil {
				return err
			}
			s.logger.Info("Catalog", "Disabled obsolete model", map[string]interface{}{"code": m.Code})
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Flush()
	return nil
}

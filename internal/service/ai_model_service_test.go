package service

import (
	"context"
	"testing"
	"time"

	"tg-miniapp-be/internal/catalog"
	"tg-miniapp-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	factory := newTestFactory(t)
	modelService := NewAIModelService(factory, testLogger(t))
	ctx := context.Background()

	require.NoError(t, modelService.SeedDefaults(ctx))
	first, err := modelService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, first, len(catalog.DefaultModels()))

	require.NoError(t, modelService.SeedDefaults(ctx))
	second, err := modelService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}

func TestSeedDefaultsKeepsAdminPrice(t *testing.T) {
	factory := newTestFactory(t)
	modelService := NewAIModelService(factory, testLogger(t))
	ctx := context.Background()

	require.NoError(t, modelService.SeedDefaults(ctx))
	require.NoError(t, modelService.UpdatePrice(ctx, "nano-banana", 99))

	// A reseed refreshes technical fields but never claws back a price edit.
	require.NoError(t, modelService.SeedDefaults(ctx))

	m, err := modelService.GetByCode(ctx, "nano-banana")
	require.NoError(t, err)
	assert.Equal(t, 99, m.PriceTokens)
}

func TestSeedDefaultsDisablesObsoleteModels(t *testing.T) {
	factory := newTestFactory(t)
	modelService := NewAIModelService(factory, testLogger(t))
	ctx := context.Background()

	obsolete := &entity.AIModel{
		Id:               uuid.New(),
		Code:             "retired-model",
		Name:             "Retired",
		Provider:         entity.ProviderKie,
		ProviderModel:    "retired",
		Type:             entity.GenerationTypeImage,
		Mode:             entity.ModeTextToImage,
		PriceTokens:      4,
		PriceDisplayMode: entity.PriceFixed,
		IsEnabled:        true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.AIModelRepository().Create(ctx, obsolete))

	require.NoError(t, modelService.SeedDefaults(ctx))

	m, err := modelService.GetByCode(ctx, "retired-model")
	require.NoError(t, err)
	assert.False(t, m.IsEnabled)
}

func TestGetByCodeUnknown(t *testing.T) {
	factory := newTestFactory(t)
	modelService := seedCatalog(t, factory)

	_, err := modelService.GetByCode(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, entity.ErrUnknownModel)
}

func TestListEnabledExcludesDisabled(t *testing.T) {
	factory := newTestFactory(t)
	modelService := seedCatalog(t, factory)
	ctx := context.Background()

	require.NoError(t, modelService.SetEnabled(ctx, "nano-banana", false))

	enabled, err := modelService.ListEnabled(ctx)
	require.NoError(t, err)
	for _, m := range enabled {
		assert.NotEqual(t, "nano-banana", m.Code)
	}
}

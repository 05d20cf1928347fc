package service

import (
	"context"
	"fmt"
	"testing"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/telegram"
	"tg-miniapp-be/internal/repository/specification"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (IUserService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	svc := NewUserService(
		factory,
		config.TelegramConfig{BotUsername: "testbot", AdminTelegramIDs: []int64{777}},
		config.BonusConfig{WelcomeTokens: 10, ReferralTokens: 5},
		nil,
		testLogger(t),
	)
	return svc, factory
}

func TestGetOrCreateRegistersWithWelcomeBonus(t *testing.T) {
	svc, factory := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{
		ID: 1001, FirstName: "Ada", Username: "ada",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, 10, user.Balance)
	assert.False(t, user.IsAdmin)

	rows, err := factory.NewUnitOfWork(ctx).BalanceHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: user.Id})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.OperationWelcome, rows[0].OperationType)
	assert.Equal(t, 10, rows[0].Amount)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	svc, factory := newUserFixture(t)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: 1001, FirstName: "Ada"}, "")
	require.NoError(t, err)

	// A second authentication returns the same account, no second bonus.
	second, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: 1001, FirstName: "Ada"}, "")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	rows, err := factory.NewUnitOfWork(ctx).BalanceHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: first.Id})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGetOrCreateRefreshesProfile(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: 1001, FirstName: "Ada"}, "")
	require.NoError(t, err)

	updated, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{
		ID: 1001, FirstName: "Ada", Username: "ada_l", LastName: "Lovelace",
	}, "")
	require.NoError(t, err)
	require.NotNil(t, updated.Username)
	assert.Equal(t, "ada_l", *updated.Username)
	require.NotNil(t, updated.LastName)
	assert.Equal(t, "Lovelace", *updated.LastName)
}

func TestGetOrCreateMarksConfiguredAdmins(t *testing.T) {
	svc, _ := newUserFixture(t)

	admin, err := svc.GetOrCreate(context.Background(), &telegram.WebAppUser{ID: 777, FirstName: "Root"}, "")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestReferralBonusSettlement(t *testing.T) {
	svc, factory := newUserFixture(t)
	ctx := context.Background()

	referrer, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: 2001, FirstName: "Ref"}, "")
	require.NoError(t, err)

	referred, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: 2002, FirstName: "New"},
		fmt.Sprintf("ref_%d", referrer.TelegramID))
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	reloaded, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: referrer.Id})
	require.NoError(t, err)
	assert.Equal(t, 15, reloaded.Balance) // 10 welcome + 5 referral

	count, err := uow.ReferralRepository().CountByReferrer(ctx, referrer.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	info, err := svc.GetReferralInfo(ctx, referrer.Id)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("https://t.me/testbot?start=ref_%d", referrer.TelegramID), info.ReferralLink)
	assert.EqualValues(t, 1, info.ReferredCount)
	assert.Equal(t, 5, info.BonusPerUser)

	// The referred account only carries its own welcome bonus.
	assert.Equal(t, 10, referred.Balance)
}

func TestReferralIgnoresBadStartParams(t *testing.T) {
	svc, factory := newUserFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		telegramID int64
		startParam string
	}{
		{name: "self referral", telegramID: 3001, startParam: "ref_3001"},
		{name: "unknown referrer", telegramID: 3002, startParam: "ref_999999"},
		{name: "garbage param", telegramID: 3003, startParam: "ref_not-a-number"},
		{name: "empty param", telegramID: 3004, startParam: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.GetOrCreate(ctx, &telegram.WebAppUser{ID: tt.telegramID, FirstName: "X"}, tt.startParam)
			require.NoError(t, err)
			assert.Equal(t, 10, user.Balance) // welcome bonus only

			count, err := factory.NewUnitOfWork(ctx).ReferralRepository().CountByReferrer(ctx, user.Id)
			require.NoError(t, err)
			assert.EqualValues(t, 0, count)
		})
	}
}

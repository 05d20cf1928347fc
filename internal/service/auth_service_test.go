package service

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"tg-miniapp-be/internal/config"
	"tg-miniapp-be/internal/dto"
	"tg-miniapp-be/internal/entity"
	"tg-miniapp-be/internal/pkg/telegram"
	"tg-miniapp-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authTestBotToken = "12345:test-bot-token"

func newAuthFixture(t *testing.T) (IAuthService, IUserService, unitofwork.RepositoryFactory) {
	factory := newTestFactory(t)
	telegramCfg := config.TelegramConfig{
		BotToken:       authTestBotToken,
		BotUsername:    "testbot",
		InitDataMaxAge: time.Hour,
	}
	userService := NewUserService(factory, telegramCfg, config.BonusConfig{WelcomeTokens: 10}, nil, testLogger(t))
	authService := NewAuthService(userService, telegramCfg, "test-jwt-secret")
	return authService, userService, factory
}

func signedAuthInitData(t *testing.T, telegramID int64) string {
	t.Helper()

	values := url.Values{}
	values.Set("user", `{"id":`+strconv.FormatInt(telegramID, 10)+`,"first_name":"Ada","username":"ada"}`)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("hash", telegram.Sign(values, authTestBotToken))
	return values.Encode()
}

func TestAuthenticateInitDataCreatesAccount(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	user, err := authService.AuthenticateInitData(context.Background(), signedAuthInitData(t, 5001))
	require.NoError(t, err)
	assert.EqualValues(t, 5001, user.TelegramID)
	assert.Equal(t, 10, user.Balance)
}

func TestAuthenticateInitDataRejectsForgery(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	raw := signedAuthInitData(t, 5001)
	_, err := authService.AuthenticateInitData(context.Background(), raw+"x")
	assert.ErrorIs(t, err, telegram.ErrInvalidInitData)
}

func TestAuthenticateInitDataRejectsBannedUser(t *testing.T) {
	authService, userService, factory := newAuthFixture(t)
	ctx := context.Background()

	raw := signedAuthInitData(t, 5001)
	user, err := authService.AuthenticateInitData(ctx, raw)
	require.NoError(t, err)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserRepository().SetBanned(ctx, user.Id, true))

	_, err = authService.AuthenticateInitData(ctx, raw)
	assert.ErrorIs(t, err, entity.ErrUserBanned)

	// The account still exists, it just cannot authenticate.
	_, err = userService.GetByTelegramID(ctx, 5001)
	assert.NoError(t, err)
}

func TestTokenRoundtrip(t *testing.T) {
	authService, userService, _ := newAuthFixture(t)
	ctx := context.Background()

	res, err := authService.IssueToken(ctx, &dto.TokenRequest{InitData: signedAuthInitData(t, 5001)})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotNil(t, res.User)

	user, err := userService.GetByTelegramID(ctx, 5001)
	require.NoError(t, err)

	parsed, err := authService.ParseToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Id, parsed)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	authService, _, _ := newAuthFixture(t)

	_, err := authService.ParseToken("not-a-jwt")
	assert.Error(t, err)

	// Signed with a different secret.
	otherFactory := newTestFactory(t)
	otherUsers := NewUserService(otherFactory, config.TelegramConfig{BotToken: authTestBotToken}, config.BonusConfig{}, nil, testLogger(t))
	other := NewAuthService(otherUsers, config.TelegramConfig{BotToken: authTestBotToken}, "other-secret")
	res, err := other.IssueToken(context.Background(), &dto.TokenRequest{InitData: signedAuthInitData(t, 6001)})
	require.NoError(t, err)

	_, err = authService.ParseToken(res.AccessToken)
	assert.Error(t, err)
}
